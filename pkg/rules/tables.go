package rules

import "github.com/aws/aws-sdk-go-v2/service/ec2/types"

// Tables is the complete rule set shared by the classifier, optimizer and
// emitter. A Tables value is never modified after construction, so one value
// may serve any number of concurrent pipeline runs.
type Tables struct {
	// Categories is the tie-break order for detected types
	Categories []AppType

	Frameworks    []FrameworkRule
	InfraHints    []FrameworkRule
	Databases     []DatabaseRule
	DockerMarkers []string

	FileUploadKeywords KeywordSet
	ImageKeywords      KeywordSet
	BucketKeywords     KeywordSet

	UserDataKeywords KeywordSet
	AuthKeywords     KeywordSet
	SSLKeywords      KeywordSet

	MemoryKeywords  KeywordSet
	CPUKeywords     KeywordSet
	NetworkKeywords KeywordSet

	Phrases  []Phrase
	Weights  Weights
	Fallback Fallback

	Ladder         []Bundle
	BaseBundles    map[AppType]string
	DefaultBundle  string
	BudgetCeilings map[string]string

	DatabaseCostBand CostRange
	BucketCostBand   CostRange
	DatabaseCosts    map[string]map[string]float64
	Buckets          []BucketPlan

	MemoryIntensiveRAMGB float64
	CostAlertTotal       float64

	HealthChecks         map[AppType]HealthCheck
	DefaultHealthCheck   HealthCheck
	FileInclusions       map[AppType][]string
	DefaultFileInclusion []string
	Dependencies         []Dependency
	TypeDependencies     map[AppType][]string
	RateLimitedTypes     []AppType
	DeploymentPhases     []string
}

var (
	nodeManifests   = []string{"package.json"}
	pythonManifests = []string{"requirements.txt", "Pipfile", "pyproject.toml", "setup.py"}
	dbManifests     = []string{
		"package.json", "requirements.txt", "Pipfile", "pyproject.toml", "composer.json",
		"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml",
		".env", ".env.example", "settings.py", "config.py", "database.php", "wp-config.php",
	}
)

func withFiles(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// Default returns a freshly built copy of the built-in rule set
func Default() *Tables {
	return &Tables{
		Categories: []AppType{TypeNodeJS, TypeReact, TypePython, TypeLAMP, TypeDocker, TypeNginx},

		Frameworks: []FrameworkRule{
			{Name: "express", Category: TypeNodeJS, Match: Match{Filenames: nodeManifests, Substrings: []string{`"express"`}}},
			{Name: "fastify", Category: TypeNodeJS, Match: Match{Filenames: nodeManifests, Substrings: []string{`"fastify"`}}},
			{Name: "koa", Category: TypeNodeJS, Match: Match{Filenames: nodeManifests, Substrings: []string{`"koa"`}}},
			{Name: "nestjs", Category: TypeNodeJS, Match: Match{Filenames: nodeManifests, Substrings: []string{`"@nestjs/core"`}}},
			{Name: "next", Category: TypeNodeJS, Match: Match{Filenames: withFiles(nodeManifests, "next.config.js", "next.config.mjs"), Substrings: []string{`"next"`, "nextConfig"}}},
			{Name: "react", Category: TypeReact, Match: Match{Filenames: nodeManifests, Substrings: []string{`"react"`, `"react-dom"`, `"react-scripts"`}}},
			{Name: "django", Category: TypePython, Match: Match{Filenames: withFiles(pythonManifests, "manage.py", "settings.py"), Substrings: []string{"django", "Django"}}},
			{Name: "flask", Category: TypePython, Match: Match{Filenames: withFiles(pythonManifests, "app.py", "wsgi.py"), Substrings: []string{"flask", "Flask"}}},
			{Name: "fastapi", Category: TypePython, Match: Match{Filenames: withFiles(pythonManifests, "main.py", "app.py"), Substrings: []string{"fastapi", "FastAPI"}}},
			{Name: "laravel", Category: TypeLAMP, Match: Match{Filenames: []string{"composer.json", "artisan"}, Substrings: []string{"laravel/framework", "Illuminate\\"}}},
			{Name: "wordpress", Category: TypeLAMP, Match: Match{Filenames: []string{"wp-config.php", "wp-config-sample.php", "wp-settings.php"}, Substrings: []string{"DB_NAME", "ABSPATH", "wp-settings.php"}}},
			{Name: "php", Category: TypeLAMP, Match: Match{Filenames: []string{"*.php", "composer.json"}, Substrings: []string{"<?php", `"php"`}}},
		},

		InfraHints: []FrameworkRule{
			{Name: "nginx", Category: TypeNginx, Match: Match{Filenames: []string{"nginx.conf", "nginx/", "*.conf"}, Substrings: []string{"server {", "server{", "upstream ", "proxy_pass"}}},
			{Name: "apache", Category: TypeLAMP, Match: Match{Filenames: []string{".htaccess", "apache2.conf", "httpd.conf"}, Substrings: []string{"RewriteEngine", "<VirtualHost", "DocumentRoot"}}},
		},

		Databases: []DatabaseRule{
			{Name: "mysql", Kind: "mysql", Match: Match{Filenames: dbManifests, Substrings: []string{`"mysql"`, `"mysql2"`, "mysqlclient", "PyMySQL", "pymysql", "DB_CONNECTION=mysql", "image: mysql", "image: mariadb", "backends.mysql", "define( 'DB_NAME'", "define('DB_NAME'"}}},
			{Name: "postgresql", Kind: "postgresql", Match: Match{Filenames: dbManifests, Substrings: []string{`"pg"`, "psycopg", "asyncpg", "postgres", "DB_CONNECTION=pgsql"}}},
			{Name: "mongodb", Kind: "mongodb", Match: Match{Filenames: dbManifests, Substrings: []string{"mongoose", "mongodb", "pymongo", "mongoengine", "image: mongo"}}},
			{Name: "redis", Kind: "redis", Match: Match{Filenames: dbManifests, Substrings: []string{"redis", "ioredis"}}},
			{Name: "sqlite", Kind: "sqlite", Match: Match{Filenames: dbManifests, Substrings: []string{"sqlite3", "better-sqlite3", "DB_CONNECTION=sqlite"}}},
		},

		DockerMarkers: []string{"Dockerfile", "docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"},

		FileUploadKeywords: KeywordSet{"multer", "formidable", "busboy", "express-fileupload", "FileField", "ImageField", "UploadFile", "request.files", "$_FILES", "move_uploaded_file"},
		ImageKeywords:      KeywordSet{"sharp", "jimp", "Pillow", "from PIL", "imagemagick", "ImageMagick", "intervention/image"},
		BucketKeywords:     KeywordSet{"@aws-sdk/client-s3", "aws-sdk", "boto3", "S3Client", "flysystem-aws-s3", "django-storages", "multer-s3", "cloudinary"},

		UserDataKeywords: KeywordSet{"password", "passwd", "users", "user_id", "userId", "email_address", "emailAddress", "customer", "personal_data", "date_of_birth"},
		AuthKeywords:     KeywordSet{"passport", "jsonwebtoken", "jwt", "bcrypt", "express-session", "django.contrib.auth", "flask_login", "Flask-Login", "laravel/sanctum", "laravel/passport", "next-auth", "auth0", "login"},
		SSLKeywords:      KeywordSet{"https", "ssl", "tls", "stripe", "payment"},

		MemoryKeywords:  KeywordSet{"redis", "memcached", "elasticsearch", "puppeteer", "pandas", "numpy", "tensorflow", "torch"},
		CPUKeywords:     KeywordSet{"sharp", "ffmpeg", "tensorflow", "torch", "worker_threads", "celery", "imagemagick", "opencv"},
		NetworkKeywords: KeywordSet{"socket.io", `"ws"`, "websocket", "WebSocket", "graphql", "grpc", "kafka", "amqp"},

		Phrases: []Phrase{
			{Phrase: "wordpress", Framework: "wordpress", Category: TypeLAMP, Confidence: 0.6},
			{Phrase: "laravel", Framework: "laravel", Category: TypeLAMP, Confidence: 0.6},
			{Phrase: "php", Framework: "php", Category: TypeLAMP, Confidence: 0.5},
			{Phrase: "express", Framework: "express", Category: TypeNodeJS, Confidence: 0.6},
			{Phrase: "next.js", Framework: "next", Category: TypeNodeJS, Confidence: 0.6},
			{Phrase: "node", Framework: "nodejs", Category: TypeNodeJS, Confidence: 0.5},
			{Phrase: "react", Framework: "react", Category: TypeReact, Confidence: 0.6},
			{Phrase: "single page", Framework: "spa", Category: TypeReact, Confidence: 0.5},
			{Phrase: "django", Framework: "django", Category: TypePython, Confidence: 0.6},
			{Phrase: "flask", Framework: "flask", Category: TypePython, Confidence: 0.6},
			{Phrase: "fastapi", Framework: "fastapi", Category: TypePython, Confidence: 0.6},
			{Phrase: "python", Framework: "python", Category: TypePython, Confidence: 0.5},
			{Phrase: "docker", Framework: "docker", Category: TypeDocker, Confidence: 0.5},
			{Phrase: "container", Framework: "docker", Category: TypeDocker, Confidence: 0.5},
			{Phrase: "nginx", Framework: "nginx", Category: TypeNginx, Confidence: 0.6},
			{Phrase: "static site", Framework: "static", Category: TypeNginx, Confidence: 0.5},
			{Phrase: "mysql", Database: "mysql"},
			{Phrase: "mariadb", Database: "mysql"},
			{Phrase: "postgres", Database: "postgresql"},
			{Phrase: "mongo", Database: "mongodb"},
			{Phrase: "redis", Database: "redis"},
			{Phrase: "sqlite", Database: "sqlite"},
			{Phrase: "e-commerce", BundleHint: "medium"},
			{Phrase: "ecommerce", BundleHint: "medium"},
			{Phrase: "high traffic", BundleHint: "large"},
			{Phrase: "heavy load", BundleHint: "large"},
			{Phrase: "machine learning", BundleHint: "large"},
		},

		Weights: Weights{
			Framework:           0.8,
			Database:            0.7,
			InfraHint:           0.9,
			DescriptionDatabase: 0.6,
		},

		Fallback: Fallback{
			Threshold:          0.5,
			DockerConfidence:   0.7,
			DatabaseType:       TypeLAMP,
			DatabaseConfidence: 0.6,
		},

		Ladder: []Bundle{
			{Name: "nano", ID: "nano_3_0", VCPU: 2, RAMGB: 0.5, DiskGB: 20, PriceMonthly: 3.5, EC2Equivalent: types.InstanceTypeT3Nano, CostBand: CostRange{Min: 3.5, Max: 5}},
			{Name: "micro", ID: "micro_3_0", VCPU: 2, RAMGB: 1, DiskGB: 40, PriceMonthly: 5, EC2Equivalent: types.InstanceTypeT3Micro, CostBand: CostRange{Min: 5, Max: 10}},
			{Name: "small", ID: "small_3_0", VCPU: 2, RAMGB: 2, DiskGB: 60, PriceMonthly: 10, EC2Equivalent: types.InstanceTypeT3Small, CostBand: CostRange{Min: 10, Max: 20}},
			{Name: "medium", ID: "medium_3_0", VCPU: 2, RAMGB: 4, DiskGB: 80, PriceMonthly: 20, EC2Equivalent: types.InstanceTypeT3Medium, CostBand: CostRange{Min: 20, Max: 40}},
			{Name: "large", ID: "large_3_0", VCPU: 2, RAMGB: 8, DiskGB: 160, PriceMonthly: 40, EC2Equivalent: types.InstanceTypeT3Large, CostBand: CostRange{Min: 40, Max: 80}},
			{Name: "xlarge", ID: "xlarge_3_0", VCPU: 4, RAMGB: 16, DiskGB: 320, PriceMonthly: 80, EC2Equivalent: types.InstanceTypeT3Xlarge, CostBand: CostRange{Min: 80, Max: 160}},
			{Name: "2xlarge", ID: "2xlarge_3_0", VCPU: 8, RAMGB: 32, DiskGB: 640, PriceMonthly: 160, EC2Equivalent: types.InstanceTypeT32xlarge, CostBand: CostRange{Min: 160, Max: 320}},
		},
		BaseBundles: map[AppType]string{
			TypeDocker: "medium",
			TypeLAMP:   "small",
			TypeReact:  "nano",
			TypeNginx:  "nano",
			TypeNodeJS: "micro",
			TypePython: "micro",
		},
		DefaultBundle:  "micro",
		BudgetCeilings: map[string]string{"minimal": "medium"},

		DatabaseCostBand: CostRange{Min: 15, Max: 50},
		BucketCostBand:   CostRange{Min: 1, Max: 10},
		DatabaseCosts: map[string]map[string]float64{
			"mysql":      {"small": 15, "medium": 30, "large": 60},
			"postgresql": {"small": 15, "medium": 30, "large": 60},
		},
		Buckets: []BucketPlan{
			{Size: "small", StorageGB: 5, PriceMonthly: 1},
			{Size: "medium", StorageGB: 100, PriceMonthly: 3},
			{Size: "large", StorageGB: 250, PriceMonthly: 5},
		},

		MemoryIntensiveRAMGB: 2,
		CostAlertTotal:       50,

		HealthChecks: map[AppType]HealthCheck{
			TypeNodeJS: {Path: "/health", Port: 3000, ExpectedContent: "OK"},
			TypeReact:  {Path: "/", Port: 80, ExpectedContent: `<div id="root">`},
			TypePython: {Path: "/", Port: 8000, ExpectedContent: "Hello"},
			TypeLAMP:   {Path: "/", Port: 80, ExpectedContent: "Welcome"},
			TypeDocker: {Path: "/health", Port: 8080, ExpectedContent: "OK"},
			TypeNginx:  {Path: "/", Port: 80, ExpectedContent: "Welcome to nginx"},
		},
		DefaultHealthCheck: HealthCheck{Path: "/", Port: 80, ExpectedContent: "Welcome"},

		FileInclusions: map[AppType][]string{
			TypeNodeJS: {"package.json", "package-lock.json", "*.js", "src/**", "public/**"},
			TypeReact:  {"package.json", "build/**", "public/**", "src/**"},
			TypePython: {"requirements.txt", "*.py", "templates/**", "static/**"},
			TypeLAMP:   {"*.php", "composer.json", ".htaccess", "public/**", "assets/**"},
			TypeDocker: {"Dockerfile", "docker-compose.yml", ".dockerignore", "**/*"},
			TypeNginx:  {"nginx.conf", "*.html", "html/**"},
		},
		DefaultFileInclusion: []string{"**/*"},

		Dependencies: []Dependency{
			{Name: "git"},
			{Name: "nginx", Version: "1.24"},
			{Name: "apache", Version: "2.4"},
			{Name: "php", Version: "8.1"},
			{Name: "nodejs", Version: "18"},
			{Name: "python", Version: "3.11"},
			{Name: "docker", Version: "24.0"},
			{Name: "mysql", Version: "8.0"},
			{Name: "postgresql", Version: "15"},
			{Name: "mongodb", Version: "7.0"},
			{Name: "redis", Version: "7.2"},
			{Name: "sqlite", Version: "3"},
			{Name: "certbot"},
		},
		TypeDependencies: map[AppType][]string{
			TypeNodeJS:  {"git", "nginx", "nodejs"},
			TypeReact:   {"git", "nginx", "nodejs"},
			TypePython:  {"git", "nginx", "python"},
			TypeLAMP:    {"git", "apache", "php"},
			TypeDocker:  {"git", "docker"},
			TypeNginx:   {"git", "nginx"},
			TypeUnknown: {"git"},
		},
		RateLimitedTypes: []AppType{TypeNodeJS, TypePython, TypeLAMP, TypeDocker},
		DeploymentPhases: []string{"prepare", "install_dependencies", "configure_application", "deploy", "verify"},
	}
}
