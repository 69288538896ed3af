package testkit

import "biasaudit/domain/core"

// Candidate is a mock resume the scorers rate
type Candidate struct {
	ID         core.SubjectID
	Name       string
	Email      string
	Education  string
	Experience string
	Skills     []string
	Location   string
}

// Roster is the fixed set of demonstration candidates
func Roster() []Candidate {
	return []Candidate{
		{
			ID:         "sarah-chen",
			Name:       "Sarah Chen",
			Email:      "sarah.chen@email.com",
			Education:  "Stanford University - Computer Science, B.S.",
			Experience: "Software Engineer at Google, 3 years",
			Skills:     []string{"JavaScript", "Python", "React", "Machine Learning"},
			Location:   "San Francisco, CA",
		},
		{
			ID:         "marcus-johnson",
			Name:       "Marcus Johnson",
			Email:      "marcus.j@email.com",
			Education:  "MIT - Electrical Engineering, M.S.",
			Experience: "Senior Developer at Microsoft, 5 years",
			Skills:     []string{"C++", "Python", "Azure", "Deep Learning"},
			Location:   "Seattle, WA",
		},
		{
			ID:         "priya-patel",
			Name:       "Priya Patel",
			Email:      "priya.patel@email.com",
			Education:  "UC Berkeley - Data Science, B.S.",
			Experience: "Data Scientist at Netflix, 2 years",
			Skills:     []string{"Python", "R", "SQL", "TensorFlow"},
			Location:   "Los Angeles, CA",
		},
		{
			ID:         "alex-rodriguez",
			Name:       "Alex Rodriguez",
			Email:      "alex.r@email.com",
			Education:  "Carnegie Mellon - AI/ML, Ph.D.",
			Experience: "Research Engineer at OpenAI, 4 years",
			Skills:     []string{"Python", "PyTorch", "NLP", "Computer Vision"},
			Location:   "Pittsburgh, PA",
		},
	}
}
