package resume

// Placeholder returns the example document every new session starts with, so the
// preview is never empty.
func Placeholder() Document {
	return Document{
		Contact: Contact{
			Name:     "Your Name",
			Email:    "your.email@example.com",
			Phone:    "123-456-7890",
			Location: "City, State",
			LinkedIn: "linkedin.com/in/yourprofile",
			GitHub:   "github.com/yourusername",
			Website:  "yourportfolio.com",
		},
		Summary: "A brief professional summary about yourself. Highlight your key skills, experience, and career goals. Tailor this to the job you are applying for.",
		Experience: []Experience{
			{
				ID:        "exp1",
				Company:   "Awesome Company",
				Title:     "Software Engineer",
				StartDate: "Jan 2022",
				EndDate:   "Present",
				Location:  "San Francisco, CA",
				Description: []string{
					"Developed and maintained web applications using React and TypeScript.",
					"Collaborated with cross-functional teams to deliver high-quality software.",
					"Improved application performance by 20% through code optimization.",
				},
			},
		},
		Education: []Education{
			{
				ID:          "edu1",
				Institution: "University of Technology",
				Degree:      "B.S. in Computer Science",
				StartDate:   "Sep 2018",
				EndDate:     "Dec 2021",
				Location:    "Techville, USA",
			},
		},
		Projects: []Project{
			{
				ID:          "proj1",
				Name:        "Personal Portfolio Website",
				Description: "Designed and built a responsive portfolio website to showcase my projects and skills.",
				Link:        "yourportfolio.com",
			},
		},
		Skills: []SkillGroup{
			{ID: "skill1", Category: "Programming Languages", Items: "JavaScript, TypeScript, Python, HTML, CSS"},
			{ID: "skill2", Category: "Frameworks & Libraries", Items: "React, Node.js, Express, Tailwind CSS"},
			{ID: "skill3", Category: "Tools & Platforms", Items: "Git, Docker, AWS, Vercel"},
		},
		SectionOrder: DefaultSectionOrder(),
	}
}
