// Package community implements the forum page: persisted posts with likes,
// flags, tags and replies, optimistic pure mutators, and the two-phase
// submit flow that commits the user's content immediately and may schedule
// a delayed AI reply for question-like submissions.
package community

// Reply is one response under a post. IsAI marks the simulated assistant
// voice; it is never set on a human-authored reply.
type Reply struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
	Liked     bool   `json:"liked"`
	IsAI      bool   `json:"isAI"`
}

// Post is one forum entry. Liked is this client's like state; Likes and
// Liked always move together.
type Post struct {
	ID        string   `json:"id"`
	Author    string   `json:"author"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"`
	Likes     int      `json:"likes"`
	Liked     bool     `json:"liked"`
	Replies   []Reply  `json:"replies"`
	Tags      []string `json:"tags"`
	Flagged   bool     `json:"flagged"`
}

// SeedPosts returns the default forum contents used when the store holds
// no prior value.
func SeedPosts() []Post {
	return []Post{
		{
			ID:        "post-1",
			Author:    "Youssef",
			Content:   "Salam! I've been learning JavaScript for 3 weeks now and I'm struggling with async/await concepts. Any good resources in Darija that explain this well?",
			Timestamp: "2 hours ago",
			Likes:     8,
			Replies: []Reply{
				{
					ID:        "reply-1-1",
					Author:    "AI Assistant",
					Content:   "Mrhba Youssef! For async/await in Darija, check out DarijaCode's lessons on JavaScript asynchronous programming. I'd recommend starting with promises before moving to async/await. O jreb had video: https://youtu.be/example",
					Timestamp: "1 hour ago",
					Likes:     5,
					IsAI:      true,
				},
				{
					ID:        "reply-1-2",
					Author:    "Fatima",
					Content:   "Ana kont 3endi nafs lmochkil. Jrebt course dial 'JavaScript Maroc' 3la YouTube, kaycherho async/await mezyan bzaf. Good luck!",
					Timestamp: "45 minutes ago",
					Likes:     3,
				},
			},
			Tags: []string{"javascript", "beginner", "question"},
		},
		{
			ID:        "post-2",
			Author:    "Mohamed",
			Content:   "Just completed my first React project! It's a dashboard for tracking water consumption in different regions of Morocco. Learned a lot about hooks and context API.",
			Timestamp: "1 day ago",
			Likes:     15,
			Replies: []Reply{
				{
					ID:        "reply-2-1",
					Author:    "Sophia",
					Content:   "Mabrouk Mohamed! I'm also working with React. Would you mind sharing your GitHub repo? I'd love to see how you implemented the data visualization.",
					Timestamp: "20 hours ago",
					Likes:     2,
				},
			},
			Tags: []string{"react", "project", "showcase"},
		},
		{
			ID:        "post-3",
			Author:    "Amina",
			Content:   "Anyone here using TailwindCSS? I'm considering switching from Bootstrap but not sure if it's worth the learning curve. Thoughts?",
			Timestamp: "3 days ago",
			Likes:     10,
			Replies: []Reply{
				{
					ID:        "reply-3-1",
					Author:    "AI Assistant",
					Content:   "Tailwind CSS offers great utility-first approach and is very customizable. The learning curve isn't too steep if you already know CSS. The documentation is excellent too. For Moroccan developers, there's a growing community of Tailwind users in tech meetups in Casablanca and Rabat.",
					Timestamp: "3 days ago",
					Likes:     6,
					IsAI:      true,
				},
				{
					ID:        "reply-3-2",
					Author:    "Karim",
					Content:   "Ana kanstakhdem Tailwind f projects dyali kolhom. In the beginning ghadi t7ess bli complicated, walkin from my experience, it speeds up development a lot once you get used to it.",
					Timestamp: "2 days ago",
					Likes:     8,
				},
			},
			Tags: []string{"css", "tailwind", "question"},
		},
	}
}
