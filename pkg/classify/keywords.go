package classify

// Keyword tables driving content classification. They are built once per
// Classifier and never mutated; all matching is lower-cased substring search.

var techKeywords = []string{
	"rust", "python", "javascript", "typescript", "react", "vue", "angular",
	"nodejs", "express", "fastapi", "django", "flask", "next.js", "nuxt",
	"docker", "kubernetes", "aws", "gcp", "azure", "postgresql", "mysql",
	"mongodb", "redis", "git", "github", "gitlab", "ci/cd", "terraform",
	"ansible", "jenkins", "webpack", "vite", "babel", "eslint", "prettier",
	"jest", "pytest", "cargo", "npm", "yarn", "pip", "api", "rest", "graphql",
	"sql", "nosql", "html", "css", "sass", "scss", "tailwind", "bootstrap",
}

var problemIndicators = []string{
	"error", "bug", "issue", "problem", "fail", "broken", "not work",
	"doesn't work", "crash", "exception", "undefined", "null", "panic",
	"stuck", "confused", "help", "troubleshoot", "debug", "fix",
}

var solutionIndicators = []string{
	"solution", "fix", "resolve", "implement", "create", "build", "add",
	"update", "modify", "change", "refactor", "optimize", "improve",
	"configure", "setup", "install", "deploy",
}

var learningIndicators = []string{
	"learn", "understand", "explain", "how to", "what is", "why",
	"tutorial", "guide", "documentation", "example", "best practice",
	"pattern", "concept", "theory", "principle",
}

// Two-word phrases containing one of these substrings count as topics.
var topicActionTerms = []string{
	"implement", "create", "build", "design", "configure", "setup",
}

// Terms that mark a long message as an in-depth technical discussion.
var depthTerms = []string{
	"architecture", "design pattern", "best practice", "scalability",
	"performance", "security",
}
