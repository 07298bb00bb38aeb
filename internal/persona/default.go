package persona

// Default returns the built-in profile snapshot, kept in sync with the
// portfolio frontend.
func Default() *Profile {
	return &Profile{
		Name:     "Gabriel Gonzales",
		Title:    "Web/WordPress Developer",
		Location: "Cebu City, Philippines",
		Contact: Contact{
			Email:    "fdg.gonzalesgabriel@gmail.com",
			Mobile:   "+63 945 804 7946",
			LinkedIn: "https://www.linkedin.com/in/gabriel-gonzales-9733ab1a3",
		},
		About: []string{
			"A proactive and fast-learning professional who consistently strives for excellence in every task.",
			"Recently, I have been exploring and integrating AI into application development, with hands-on experience using AI tools such as Cursor, ChatGPT, and Gemini to improve productivity, streamline workflows, and enhance overall efficiency in the workplace.",
		},
		TechStack: map[string][]string{
			"frontend":   {"HTML", "CSS", "JavaScript", "jQuery", "Vue.js", "React", "Next.js", "Tailwind CSS", "Vite", "JSON"},
			"backend":    {"PHP", "Laravel", "Java", "Python", "C", "C++", "C#"},
			"crmCms":     {"WordPress", "Salesforce"},
			"automation": {"Selenium"},
			"database":   {"MySQL", "SQL", "Supabase"},
			"tools":      {"Git", "GitHub", "Bitbucket", "VS Code", "Cursor", "Vercel", "Formspree"},
			"gameDev":    {"Godot"},
		},
		BeyondCoding: []string{
			"I love to write poems",
			"I also love to cook whenever I have the resources",
		},
		Experience: []Experience{
			{Role: "Senior Web/WordPress Developer", Company: "Proweaver Inc.", Years: "2023 - Present"},
			{Role: "Salesforce Automation Testing Intern", Company: "Accenture", Years: "2023 - 2023"},
			{Role: "B.S. in Computer Science", Company: "University of Southern Philippines Foundation (graduate)", Years: "2019 - 2023"},
			{Role: "Student Projects Developer", Company: "Freelance", Years: "2016 - 2018"},
		},
		Projects: []Project{
			{Name: "AI Form Converter", Description: "Laravel + Vue + Gemini AI Studio tool that converts forms by reading references with AI."},
			{Name: "Roseatte", Description: "A WordPress website with a custom theme, deployed on InfinityFree.", URL: "https://roseatte.lovestoblog.com"},
			{Name: "Form Conversion Tool", Description: "A React + Vite form conversion tool, deployed on Vercel.", URL: "https://formconversiontool.vercel.app/"},
			{Name: "Knowledge Base App", Description: "A knowledge sharing app built with Next.js and Supabase, deployed on Vercel.", URL: "https://kb-app-five.vercel.app/"},
		},
		Certifications: []Certification{
			{Name: "WordPress Fundamentals (Content Management System)", Issuer: "Alison", Year: "2026"},
			{Name: "AI for Communities Workshop", Issuer: "Vjal Institute", Year: "2026"},
			{Name: "Top Performer (Multiple Awards)", Issuer: "Proweaver Inc.", Year: "2024-2025"},
			{Name: "Java Programming", Issuer: "University of Southern Philippines Foundation", Year: "2022"},
			{Name: "Hackathon Champion", Issuer: "University of Southern Philippines Foundation", Year: "2021"},
		},
		Recommendations: []Recommendation{
			{
				Quote:    "Gabriel is a goal-oriented individual who consistently delivers high-quality outputs. He works independently, takes initiative in completing his tasks, and is always willing to extend a helping hand to his colleagues.",
				Author:   "Claudine Benitez",
				Position: "Supervisor at Proweaver Inc.",
			},
			{
				Quote:    "An exceptional web developer at Proweaver, he consistently delivers high-quality work backed by strong technical expertise, keen attention to detail, and a solid understanding of modern web standards.",
				Author:   "Christopher Perez",
				Position: "Team Leader at Proweaver Inc.",
			},
		},
		Greeting: "Hey there! 👋 I'm Gabriel. Ask me about my work, my tech stack, my love for cooking (and poetry, if you're into that 😄) — or anything else. Fire away!",
	}
}
