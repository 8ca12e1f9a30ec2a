package resume

// skillKeywords is the fixed vocabulary matched against résumé text. Matches
// are whole-word and case-insensitive.
var skillKeywords = []string{
	// Programming languages
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "PHP", "Ruby", "Go",
	"Rust", "Swift", "Kotlin", "Scala", "C", "Objective-C", "Dart", "R", "Matlab",

	// Frontend
	"React", "Vue", "Angular", "HTML", "CSS", "SCSS", "SASS", "Bootstrap", "Tailwind",
	"jQuery", "Next.js", "Nuxt.js", "Svelte", "Ember", "Webpack", "Vite", "Parcel",

	// Backend
	"Node.js", "Express", "Spring", "Django", "Flask", "Ruby on Rails", "ASP.NET",
	"Laravel", "CodeIgniter", "FastAPI", "Koa", "Hapi", "Nest.js",

	// Databases
	"MySQL", "PostgreSQL", "MongoDB", "SQLite", "Redis", "Elasticsearch", "Oracle",
	"SQL Server", "Firebase", "DynamoDB", "Cassandra", "CouchDB",

	// Cloud & DevOps
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins", "Git", "CI/CD",
	"Terraform", "Ansible", "Chef", "Puppet", "GitLab", "GitHub Actions",

	// Other
	"REST API", "GraphQL", "Redux", "Zustand", "RxJS", "Socket.io", "WebRTC",
	"Machine Learning", "AI", "Data Science", "TensorFlow", "PyTorch", "OpenCV",

	// Methodologies
	"Agile", "Scrum", "Kanban", "TDD", "BDD", "DevOps", "Microservices",
}

// skillSections are headings that mark a dedicated skills block; matches
// within the following lines are preferred over a whole-document scan.
var skillSections = []string{"skills", "technical skills", "technologies", "expertise", "competencies"}

// nameSkipWords are section headers and contact labels that disqualify a line
// from being a candidate name.
var nameSkipWords = []string{
	"resume", "cv", "curriculum", "vitae", "profile", "about", "contact",
	"email", "phone", "address", "summary", "objective", "experience",
	"education", "skills", "projects", "work", "employment",
}

var educationKeywords = []string{
	"Bachelor", "Master", "PhD", "Doctorate", "BS", "MS", "MBA", "BEng", "MEng",
	"Computer Science", "Software Engineering", "Information Technology", "Engineering",
	"University", "College", "Institute", "School",
}

var summaryKeywords = []string{"summary", "objective", "profile", "about", "overview"}

var projectKeywords = []string{"project", "application", "system", "platform", "website", "app"}
