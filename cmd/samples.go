package cmd

// Bundled applicants for demo runs without input files.
type sampleApplicant struct {
	Label       string
	Profile     string
	CoverLetter string
}

var sampleApplicants = []sampleApplicant{
	{
		Label: "Backend engineer (experienced)",
		Profile: "Michael Chen, Senior Software Engineer with 5 years of experience in backend development. " +
			"B.Tech in Computer Science from 2019. Expert in Python, FastAPI, Django, PostgreSQL, and AWS. " +
			"Built scalable microservices handling millions of requests. Experience with Docker, Kubernetes, " +
			"CI/CD pipelines, and system design. Led a team of 4 developers and mentored junior engineers. " +
			"Strong background in data structures, algorithms, and distributed systems.",
		CoverLetter: "I am passionate about building robust, scalable systems that solve real-world problems. " +
			"Throughout my career I have taken ownership of my projects from conception to deployment, learning " +
			"from both successes and failures. I believe in working backwards from customer needs to deliver " +
			"simple, delightful experiences. I value transparency and open communication, and I am excited about " +
			"the opportunity to collaborate closely with the team in the office.",
	},
	{
		Label: "B2B account executive",
		Profile: "James Thompson, Account Executive with 4 years of experience in B2B SaaS sales. Graduated in " +
			"2020 with a degree in Business Administration. Consistently exceeded quota by 120% over the past " +
			"2 years. Experience with Salesforce CRM, MEDDICC methodology, and complex sales cycles. Led deals " +
			"worth $500K+ ARR and managed a pipeline of 50+ opportunities.",
		CoverLetter: "I am passionate about B2B sales and helping businesses solve their challenges through " +
			"technology. I take complete ownership of my pipeline and outcomes, learning from both successful " +
			"deals and rejections. I work backwards from customer pain points, communicate transparently with " +
			"customers and internal teams, and thrive in collaborative office environments.",
	},
	{
		Label: "Computer science student (graduates 2026)",
		Profile: "Alex Kumar, currently pursuing B.Tech in Computer Science, expected graduation in 2026. " +
			"Strong foundation in Python, Java, and C++. Completed several academic projects including a web " +
			"application and a machine learning model. Internship experience at a startup working on mobile " +
			"app development.",
		CoverLetter: "As a current student, I am eager to apply my theoretical knowledge in a real-world " +
			"setting. I am passionate about technology and constantly learning new skills, and I am excited " +
			"about the opportunity to grow professionally while contributing to innovative projects.",
	},
	{
		Label: "HR manager (out of scope)",
		Profile: "Sarah Johnson, Human Resources Manager with 4 years of experience. Graduated in 2020 with a " +
			"degree in Psychology. Specialized in recruitment, employee relations, and HR policy development. " +
			"Led hiring processes for 200+ employees across various departments.",
		CoverLetter: "I am passionate about people management and organizational development. I believe in " +
			"creating inclusive work environments where every employee can thrive, and I am excited about the " +
			"opportunity to contribute to your team's growth and success.",
	},
}
