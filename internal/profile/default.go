package profile

// Default is the profile shipped with the site. It links no local assets;
// a PROFILE_PATH file can add a photo, project images and a resume.
func Default() Profile {
	return Profile{
		Name:     "Kishore M M",
		Title:    "Java Full Stack Developer",
		LinkedIn: "https://www.linkedin.com/in/kishore-m-m-cse",
		GitHub:   "https://github.com/Kishore-MM",
		Email:    "kishoremm9741887590@gmail.com",
		Summary: `A highly motivated and recent Computer Science graduate specializing in Java Full Stack Development. 
Passionate about building robust and scalable applications, with hands-on experience in Spring Boot, React, and cloud technologies. 
Eager to apply strong problem-solving and debugging skills to contribute to a challenging and growth-oriented team.`,
		Skills: []SkillGroup{
			{Category: "Programming Languages", Skills: []string{"Java", "Core Java", "Python", "JavaScript", "HTML5", "CSS3", "SQL"}},
			{Category: "Frameworks & Libraries", Skills: []string{"Spring Boot", "Hibernate", "JDBC", "Servlets", "ReactJS", "Bootstrap"}},
			{Category: "Database Technologies", Skills: []string{"MySQL", "Oracle", "RDBMS", "Database Design"}},
			{Category: "Development Tools", Skills: []string{"Eclipse IDE", "Apache Tomcat", "Maven", "MySQL Workbench", "Git", "GitHub", "Postman"}},
			{Category: "Professional Competencies", Skills: []string{"Agile/Scrum", "RESTful APIs", "Team Collaboration", "Problem Solving"}},
		},
		Projects: []Project{
			{
				Title: "Employee Management System",
				Description: `A comprehensive Java-based system to manage employee records with full CRUD functionality. 
Utilized Hibernate ORM, HQL, and Criteria API for efficient data access and persistence.`,
				Tags:       []string{"Java", "Hibernate", "JDBC", "Servlet", "SQL", "HTML", "CSS"},
				SourceCode: "https://github.com/Kishore-MM/Employee-Management-System",
			},
			{
				Title:       "AI Attendance System",
				Description: `Developed an innovative attendance system using AI for face recognition, providing a seamless and secure method for tracking presence.`,
				Tags:        []string{"Python", "AI", "OpenCV", "Face Recognition"},
				SourceCode:  "https://github.com/Kishore-MM/AI-Attendance-System",
			},
			{
				Title: "CRM Web App on IBM Cloud",
				Description: `Built and deployed a Customer Relationship Management web application on IBM Cloud. 
Integrated IBM Watson AI for intelligent analysis of customer data.`,
				Tags:       []string{"IBM Cloud", "Watson AI", "HTML", "CSS", "JavaScript"},
				SourceCode: "https://github.com/Kishore-MM/CRM-WebApp-IBM",
			},
		},
		Experience: []Job{
			{
				Role:    "Java Full Stack Developer Intern (Academic Role)",
				Company: "JSpiders",
				Date:    "2024 - 2025",
				Description: `Built and debugged full-stack web applications using Java, Spring Boot, and Hibernate in a layered architecture. 
Collaborated in an agile environment using Git, integrated frontends with RESTful services, and gained experience in testing and deployment.`,
			},
			{
				Role:        "Campus Ambassador | Data Quality Analyst Intern",
				Company:     "Rooman Technologies with NSDC",
				Date:        "2023",
				Description: `Enhanced data accuracy through quality analysis and AI governance, while developing leadership and communication skills as a campus ambassador promoting tech initiatives.`,
			},
		},
		Education: Education{
			Degree:      "Bachelor of Engineering in Computer Science",
			Institution: "Ghousia College of Engineering, Ramanagara",
			CGPA:        "9.11",
			Year:        "2025",
		},
		Certifications: []string{
			"Java Full Stack Developer - JSpiders",
			"Full Stack Development Program - InnovaSkill Technologies",
			"Career Essentials in Generative AI - Microsoft & LinkedIn",
			"The Complete 2024 Web Development Bootcamp - Udemy",
			"AI Data Quality Analytics - IBM",
		},
	}
}
