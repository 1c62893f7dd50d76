package community

// The mutators below are pure: they take the previous collection and
// return the next one without touching shared slices. The board applies
// them under its lock so a delayed merge always lands on the collection
// as it stands at fire time.

// PrependPost returns posts with p at the front.
func PrependPost(posts []Post, p Post) []Post {
	out := make([]Post, 0, len(posts)+1)
	out = append(out, p)
	return append(out, posts...)
}

// ToggleLike flips this client's like on the post with the given id and
// adjusts the count. Unknown ids leave the collection unchanged; the
// count never drops below zero.
func ToggleLike(posts []Post, id string) []Post {
	out := clonePosts(posts)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if out[i].Liked {
			out[i].Liked = false
			if out[i].Likes > 0 {
				out[i].Likes--
			}
		} else {
			out[i].Liked = true
			out[i].Likes++
		}
	}
	return out
}

// ToggleReplyLike flips the like on one reply under one post.
func ToggleReplyLike(posts []Post, postID, replyID string) []Post {
	out := clonePosts(posts)
	for i := range out {
		if out[i].ID != postID {
			continue
		}
		replies := cloneReplies(out[i].Replies)
		for j := range replies {
			if replies[j].ID != replyID {
				continue
			}
			if replies[j].Liked {
				replies[j].Liked = false
				if replies[j].Likes > 0 {
					replies[j].Likes--
				}
			} else {
				replies[j].Liked = true
				replies[j].Likes++
			}
		}
		out[i].Replies = replies
	}
	return out
}

// ToggleFlag flips the moderation flag on the post with the given id.
func ToggleFlag(posts []Post, id string) []Post {
	out := clonePosts(posts)
	for i := range out {
		if out[i].ID == id {
			out[i].Flagged = !out[i].Flagged
		}
	}
	return out
}

// AppendReply adds r to the end of the reply list of the post with the
// given id. If no post matches, the collection is returned unchanged.
func AppendReply(posts []Post, postID string, r Reply) []Post {
	out := clonePosts(posts)
	for i := range out {
		if out[i].ID == postID {
			replies := make([]Reply, 0, len(out[i].Replies)+1)
			replies = append(replies, out[i].Replies...)
			out[i].Replies = append(replies, r)
		}
	}
	return out
}

func clonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	return out
}

func cloneReplies(replies []Reply) []Reply {
	out := make([]Reply, len(replies))
	copy(out, replies)
	return out
}
