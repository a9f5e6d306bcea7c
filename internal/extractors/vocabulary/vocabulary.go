package vocabulary

// Aliases resolve common spellings to one canonical skill name.
var skillTerms = []term{
	// Languages
	{canon: "python"},
	{canon: "javascript", aliases: []string{"js", "ecmascript"}},
	{canon: "typescript", aliases: []string{"ts"}},
	{canon: "java"},
	{canon: "c++", aliases: []string{"cpp"}},
	{canon: "c#", aliases: []string{"csharp", "c sharp"}},
	{canon: "go", aliases: []string{"Go", "Golang", "golang", "GoLang"}, caseSensitive: true},
	{canon: "rust", aliases: []string{"Rust"}, caseSensitive: true},
	{canon: "ruby"},
	{canon: "php"},
	{canon: "swift", aliases: []string{"Swift"}, caseSensitive: true},
	{canon: "kotlin"},
	{canon: "scala"},
	{canon: "r", aliases: []string{"R"}, caseSensitive: true},
	{canon: "matlab"},
	{canon: "perl"},
	{canon: "julia", aliases: []string{"Julia"}, caseSensitive: true},
	{canon: "clojure"},
	{canon: "f#"},
	{canon: "haskell"},
	{canon: "erlang"},
	{canon: "elixir"},
	{canon: "dart", aliases: []string{"Dart"}, caseSensitive: true},
	{canon: "vb.net"},
	{canon: "sql"},

	// Frameworks and libraries
	{canon: "react", aliases: []string{"reactjs", "react.js"}},
	{canon: "react native"},
	{canon: "angular", aliases: []string{"angularjs"}},
	{canon: "vue", aliases: []string{"vuejs", "vue.js"}},
	{canon: "django"},
	{canon: "flask"},
	{canon: "fastapi"},
	{canon: "express", aliases: []string{"Express", "Express.js", "express.js", "ExpressJS", "expressjs"}, caseSensitive: true},
	{canon: "node.js", aliases: []string{"nodejs"}},
	{canon: "spring", aliases: []string{"Spring", "Spring Boot", "spring boot"}, caseSensitive: true},
	{canon: "laravel"},
	{canon: "rails", aliases: []string{"ruby on rails"}},
	{canon: "asp.net", aliases: []string{".net"}},
	{canon: "flutter"},
	{canon: "ionic"},
	{canon: "tensorflow"},
	{canon: "pytorch"},
	{canon: "keras"},
	{canon: "scikit-learn", aliases: []string{"sklearn"}},
	{canon: "pandas"},
	{canon: "numpy"},
	{canon: "opencv"},
	{canon: "docker"},
	{canon: "kubernetes", aliases: []string{"k8s"}},
	{canon: "jenkins"},
	{canon: "terraform"},
	{canon: "ansible"},
	{canon: "chef", aliases: []string{"Chef"}, caseSensitive: true},
	{canon: "puppet", aliases: []string{"Puppet"}, caseSensitive: true},
	{canon: "graphql"},
	{canon: "grpc"},

	// Databases and messaging
	{canon: "postgresql", aliases: []string{"postgres"}},
	{canon: "mysql"},
	{canon: "mongodb", aliases: []string{"mongo"}},
	{canon: "redis"},
	{canon: "elasticsearch"},
	{canon: "sqlite"},
	{canon: "oracle"},
	{canon: "sql server", aliases: []string{"mssql"}},
	{canon: "cassandra"},
	{canon: "dynamodb"},
	{canon: "firebase"},
	{canon: "neo4j"},
	{canon: "influxdb"},
	{canon: "mariadb"},
	{canon: "couchdb"},
	{canon: "kafka", aliases: []string{"apache kafka"}},
	{canon: "rabbitmq"},

	// Cloud platforms
	{canon: "aws", aliases: []string{"amazon web services"}},
	{canon: "azure"},
	{canon: "gcp", aliases: []string{"google cloud", "google cloud platform"}},
	{canon: "heroku"},
	{canon: "digitalocean"},
	{canon: "linode"},
	{canon: "ibm cloud"},
	{canon: "oracle cloud"},
	{canon: "alibaba cloud"},
	{canon: "vercel"},
	{canon: "netlify"},

	// Tools
	{canon: "git"},
	{canon: "github"},
	{canon: "gitlab"},
	{canon: "bitbucket"},
	{canon: "jira"},
	{canon: "slack", aliases: []string{"Slack"}, caseSensitive: true},
	{canon: "vs code", aliases: []string{"vscode", "visual studio code"}},
	{canon: "intellij"},
	{canon: "postman"},
	{canon: "figma"},
	{canon: "photoshop"},
	{canon: "sketch", aliases: []string{"Sketch"}, caseSensitive: true},
	{canon: "tableau"},
	{canon: "power bi"},
	{canon: "grafana"},
	{canon: "prometheus"},
	{canon: "new relic"},
	{canon: "datadog"},
	{canon: "splunk"},
	{canon: "elk stack", aliases: []string{"elk"}},
	{canon: "linux"},
}

var locationTerms = []term{
	{canon: "new york", aliases: []string{"new york city"}},
	{canon: "new york", aliases: []string{"NYC", "NY"}, caseSensitive: true},
	{canon: "san francisco", aliases: []string{"bay area"}},
	{canon: "san francisco", aliases: []string{"SF"}, caseSensitive: true},
	{canon: "los angeles"},
	{canon: "los angeles", aliases: []string{"LA"}, caseSensitive: true},
	{canon: "washington dc", aliases: []string{"washington, dc", "washington d.c.", "washington, d.c."}},
	{canon: "washington dc", aliases: []string{"DC", "D.C."}, caseSensitive: true},
	{canon: "washington"},
	{canon: "washington", aliases: []string{"WA"}, caseSensitive: true},
	{canon: "chicago"},
	{canon: "boston"},
	{canon: "seattle"},
	{canon: "austin"},
	{canon: "denver"},
	{canon: "miami"},
	{canon: "atlanta"},
	{canon: "dallas"},
	{canon: "phoenix"},
	{canon: "portland"},
	{canon: "san diego"},
	{canon: "london"},
	{canon: "berlin"},
	{canon: "toronto"},
	{canon: "california"},
	{canon: "california", aliases: []string{"CA"}, caseSensitive: true},
	{canon: "texas"},
	{canon: "texas", aliases: []string{"TX"}, caseSensitive: true},
	{canon: "florida"},
	{canon: "florida", aliases: []string{"FL"}, caseSensitive: true},
	{canon: "illinois"},
	{canon: "illinois", aliases: []string{"IL"}, caseSensitive: true},
	{canon: "massachusetts"},
	{canon: "massachusetts", aliases: []string{"MA"}, caseSensitive: true},
	{canon: "colorado"},
	{canon: "colorado", aliases: []string{"CO"}, caseSensitive: true},
	{canon: "oregon"},
	{canon: "united states", aliases: []string{"united states of america"}},
	{canon: "united states", aliases: []string{"US", "USA", "U.S.", "U.S.A."}, caseSensitive: true},
	{canon: "united kingdom"},
	{canon: "united kingdom", aliases: []string{"UK", "U.K."}, caseSensitive: true},
	{canon: "canada"},
	{canon: "germany"},
	{canon: "france"},
	{canon: "netherlands"},
	{canon: "australia"},
	{canon: "singapore"},
	{canon: "india"},
}

var educationTerms = []term{
	{canon: "bachelor", aliases: []string{"bachelor's", "bachelors", "undergraduate degree"}},
	{canon: "bachelor", aliases: []string{"BA", "BS", "B.A.", "B.S.", "BSc", "B.Sc."}, caseSensitive: true},
	{canon: "master", aliases: []string{"master's", "masters"}},
	{canon: "master", aliases: []string{"MS", "M.S.", "MSc", "M.Sc.", "MA"}, caseSensitive: true},
	{canon: "phd", aliases: []string{"ph.d.", "ph.d", "doctorate", "doctoral degree"}},
	{canon: "associate", aliases: []string{"associate's", "associate degree", "associates degree"}},
	{canon: "associate", aliases: []string{"AA"}, caseSensitive: true},
	{canon: "mba", aliases: []string{"MBA"}, caseSensitive: true},
	{canon: "degree"},
	{canon: "diploma"},
	{canon: "certification", aliases: []string{"certificate", "certifications"}},
	{canon: "computer science"},
	{canon: "computer science", aliases: []string{"CS"}, caseSensitive: true},
	{canon: "engineering"},
	{canon: "mathematics", aliases: []string{"math", "maths"}},
	{canon: "physics"},
	{canon: "statistics"},
	{canon: "business"},
}

var benefitTerms = []term{
	{canon: "health insurance", aliases: []string{"medical insurance", "medical coverage"}},
	{canon: "healthcare", aliases: []string{"health care"}},
	{canon: "dental"},
	{canon: "vision"},
	{canon: "401k", aliases: []string{"401(k)", "401 k"}},
	{canon: "retirement", aliases: []string{"pension"}},
	{canon: "vacation"},
	{canon: "pto", aliases: []string{"paid time off"}},
	{canon: "flexible hours", aliases: []string{"flexible schedule", "flexible working hours"}},
	{canon: "gym", aliases: []string{"gym membership"}},
	{canon: "stock options"},
	{canon: "equity"},
	{canon: "bonus", aliases: []string{"bonuses"}},
	{canon: "commission"},
	{canon: "life insurance"},
	{canon: "disability insurance"},
	{canon: "tuition reimbursement"},
	{canon: "professional development"},
	{canon: "conference", aliases: []string{"conferences"}},
	{canon: "training"},
	{canon: "parental leave", aliases: []string{"maternity leave", "paternity leave"}},
}

// Capitalised words that follow "experience with" and friends but are not skills.
var contextStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "our": {}, "your": {}, "their": {}, "this": {},
	"these": {}, "both": {}, "all": {}, "any": {}, "one": {}, "modern": {},
	"large": {}, "building": {}, "using": {}, "working": {}, "writing": {},
	"designing": {}, "developing": {}, "at": {}, "in": {}, "of": {},
}
