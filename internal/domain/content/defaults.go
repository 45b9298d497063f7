package content

import "github.com/deskfolio/deskos/internal/shared/types"

// Default returns the built-in portfolio content
func Default() *Catalog {
	return &Catalog{
		Projects: []types.Project{
			{
				Title:       "A city view",
				Description: "This project mainly used C++ language for a better solution for design a city view as well this one is user-friendly, and as a result, looking a beautiful city view.",
				Image:       "cityView.png",
				GitHub:      "https://github.com/shishir1290/Designing-A-City-View",
				Details: []types.ProjectDetail{
					{Type: "text", Content: "This project primarily uses C++ to design a city view with a focus on providing efficient solutions for urban layouts."},
					{Type: "image", Content: "cityView.png", Caption: "Screenshot showcasing the designed city view."},
				},
			},
			{
				Title:       "AIUB Campus Life",
				Description: "This Next.js and Tailwind CSS project delivers a streamlined platform showcasing various aspects of university life at AIUB, combining engaging UI/UX elements with robust backend functionalities.",
				Image:       "aiubCampusLife.png",
				Link:        "https://aiub-campus-life-iota.vercel.app/",
				GitHub:      "https://github.com/shishir1290/aiub-campus-life",
			},
			{
				Title:       "Gore-Gore E-Commerce Site",
				Description: "A PHP and MySQL-based e-commerce platform providing basic functionalities like user authentication, product listing, and navigation.",
				Image:       "ghoreghore.png",
				GitHub:      "https://github.com/shishir1290/Gore-Gore-an-ecommerce-site",
			},
			{
				Title:       "Dot.Net Final Project",
				Description: "This project utilizes C# and ASP.NET for building a web application that demonstrates core back-end development skills, providing an interactive and responsive user experience.",
				Image:       "dotnet-project.png",
				GitHub:      "https://github.com/shishir1290/Dot.Net_Final_Project",
			},
		},
		Skills: []types.Skill{
			{Icon: "fab fa-html5", Label: "HTML", Color: "text-blue-500"},
			{Icon: "fab fa-css3-alt", Label: "CSS", Color: "text-blue-500"},
			{Icon: "fab fa-js-square", Label: "JavaScript", Color: "text-yellow-500"},
			{Icon: "fab fa-react", Label: "React", Color: "text-blue-400"},
			{Icon: "fab fa-node", Label: "Node.js", Color: "text-black"},
			{Icon: "/image/nextjs.svg", Label: "Next.js", Color: "text-black", IsImage: true},
			{Icon: "fas fa-cogs", Label: "Tailwind CSS", Color: "text-pink-400"},
			{Icon: "fab fa-git-alt", Label: "Git", Color: "text-black"},
			{Icon: "fab fa-node-js", Label: "Nest.js", Color: "text-black"},
			{Icon: "fab fa-microsoft", Label: ".NET", Color: "text-blue-700"},
			{Icon: "fas fa-database", Label: "SQL", Color: "text-orange-500"},
			{Icon: "/image/mysql.svg", Label: "MySQL", Color: "text-blue-500", IsImage: true},
			{Icon: "/image/mongodb.svg", Label: "MongoDB", Color: "text-green-600", IsImage: true},
		},
		Education: []types.Education{
			{
				Title:       "Bachelor of Computer Science and Engineering",
				Institution: "American International University-Bangladesh (AIUB)",
				Duration:    "2020 - 2024",
				Grade:       "CGPA: 3.60",
				Details:     "Major: Software Engineering",
			},
			{
				Title:       "Higher Secondary Certificate (HSC)",
				Institution: "Milestone College, Uttara",
				Duration:    "2017 - 2019",
				Grade:       "GPA: 5.00",
				Details:     "Group: Science",
			},
			{
				Title:       "Secondary School Certificate (SSC)",
				Institution: "Sristy Academic School, Tangail",
				Duration:    "2015 - 2017",
				Grade:       "GPA: 5.00",
				Details:     "Group: Science",
			},
		},
		Experience: []types.Experience{
			{
				Title:   "Full Stack Developer",
				Company: "Pakiza Software Limited",
				Date:    "Sept 2024 - Present",
				Role:    "Working as a junior executive.",
				Responsibilities: []string{
					"Contributing to the development of web applications using technologies like React, Next.js, Node.js, and MongoDB.",
					"Focusing on building responsive and scalable solutions for the company's clients.",
				},
				Website: "https://pakizasoftware.com",
			},
		},
		BlogPosts: []types.BlogPost{
			{
				Title:       "AIUB Campus Life: A Digital Showcase of University Spirit",
				Image:       "/blogs/aiubCampusLife.png",
				Description: "This Next.js and Tailwind CSS project delivers a streamlined platform showcasing various aspects of university life at AIUB, combining engaging UI/UX elements with robust backend functionalities.",
				Link:        "/blog/aiub-campus-life-project",
			},
			{
				Title:       "Designing A City View: A C++ Graphics Project",
				Image:       "/blogs/cityView.png",
				Description: "This C++ graphics project demonstrates the creation of a dynamic city view, utilizing graphics libraries to construct a visually rich and interactive cityscape.",
				Link:        "/blog/designing-a-city-view",
			},
		},
	}
}
