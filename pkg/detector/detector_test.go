package detector

import (
	"reflect"
	"testing"

	"stackplan/pkg/rules"
)

func classify(files []FileArtifact, description string) Analysis {
	return NewClassifier(rules.Default()).Classify(files, description)
}

func hasFramework(a Analysis, name string, source Source) bool {
	for _, fw := range a.Frameworks {
		if fw.Name == name && fw.Source == source {
			return true
		}
	}
	return false
}

func TestClassify_ExpressPackage(t *testing.T) {
	files := []FileArtifact{
		{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0"}}`},
	}

	a := classify(files, "")

	if a.DetectedType != rules.TypeNodeJS {
		t.Fatalf("expected nodejs, got %s", a.DetectedType)
	}
	if a.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", a.Confidence)
	}
	if !hasFramework(a, "express", SourceFile) {
		t.Errorf("expected express framework entry, got %+v", a.Frameworks)
	}
	if len(a.Databases) != 0 {
		t.Errorf("expected no databases, got %+v", a.Databases)
	}
	if a.DeploymentComplexity != ComplexitySimple {
		t.Errorf("expected simple complexity, got %s", a.DeploymentComplexity)
	}
	if a.InfrastructureNeeds.BundleSizeHint != "micro" {
		t.Errorf("expected micro size hint, got %s", a.InfrastructureNeeds.BundleSizeHint)
	}
	if a.EstimatedCost != (EstimatedCost{MonthlyMin: 5, MonthlyMax: 10}) {
		t.Errorf("unexpected cost estimate %+v", a.EstimatedCost)
	}
}

func TestClassify_MongooseDatabase(t *testing.T) {
	files := []FileArtifact{
		{Path: "package.json", Content: `{"dependencies":{"mongoose":"^7.0.0","express":"^4.18.0"}}`},
	}

	a := classify(files, "")

	if a.DetectedType != rules.TypeNodeJS {
		t.Fatalf("expected nodejs, got %s", a.DetectedType)
	}
	if len(a.Databases) != 1 {
		t.Fatalf("expected exactly one database, got %+v", a.Databases)
	}
	db := a.Databases[0]
	if db.Name != "mongodb" || db.Kind != "mongodb" || db.Confidence != 0.7 {
		t.Errorf("unexpected database entry %+v", db)
	}
	if a.DeploymentComplexity != ComplexityModerate {
		t.Errorf("expected moderate complexity, got %s", a.DeploymentComplexity)
	}
	if a.EstimatedCost != (EstimatedCost{MonthlyMin: 20, MonthlyMax: 60}) {
		t.Errorf("unexpected cost estimate %+v", a.EstimatedCost)
	}
}

func TestClassify_DockerfileFallback(t *testing.T) {
	files := []FileArtifact{
		{Path: "Dockerfile", Content: "FROM node:18"},
	}

	a := classify(files, "")

	if a.DetectedType != rules.TypeDocker {
		t.Fatalf("expected docker, got %s", a.DetectedType)
	}
	if a.Confidence != 0.7 {
		t.Errorf("expected fallback confidence 0.7, got %v", a.Confidence)
	}
	if a.DeploymentComplexity != ComplexityComplex {
		t.Errorf("expected complex deployment, got %s", a.DeploymentComplexity)
	}
	if a.InfrastructureNeeds.BundleSizeHint != "medium" {
		t.Errorf("expected docker to size at medium, got %s", a.InfrastructureNeeds.BundleSizeHint)
	}
}

func TestClassify_DockerfileWithFrameworkKeepsFramework(t *testing.T) {
	files := []FileArtifact{
		{Path: "Dockerfile", Content: "FROM node:18\nCMD [\"node\", \"server.js\"]"},
		{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0"}}`},
	}

	a := classify(files, "")

	if a.DetectedType != rules.TypeNodeJS {
		t.Fatalf("expected nodejs to beat the docker fallback, got %s", a.DetectedType)
	}
	if a.DeploymentComplexity != ComplexitySimple {
		t.Errorf("expected simple complexity, got %s", a.DeploymentComplexity)
	}
}

func TestClassify_DatabaseOnlyFallsBackToLAMP(t *testing.T) {
	files := []FileArtifact{
		{Path: "requirements.txt", Content: "psycopg2-binary==2.9.9\n"},
	}

	a := classify(files, "")

	if a.DetectedType != rules.TypeLAMP {
		t.Fatalf("expected lamp fallback, got %s", a.DetectedType)
	}
	if a.Confidence != 0.6 {
		t.Errorf("expected fallback confidence 0.6, got %v", a.Confidence)
	}
	if len(a.Databases) != 1 || a.Databases[0].Kind != "postgresql" {
		t.Errorf("expected postgresql, got %+v", a.Databases)
	}
}

func TestClassify_DockerFallbackWinsOverDatabaseFallback(t *testing.T) {
	files := []FileArtifact{
		{Path: ".env", Content: "DB_CONNECTION=mysql\n"},
		{Path: "Dockerfile", Content: "FROM php:8.1-apache"},
	}

	a := classify(files, "")

	if a.DetectedType != rules.TypeDocker || a.Confidence != 0.7 {
		t.Fatalf("expected docker 0.7, got %s %v", a.DetectedType, a.Confidence)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		files []FileArtifact
	}{
		{"no files", nil},
		{"empty content", []FileArtifact{{Path: "package.json", Content: ""}}},
		{"whitespace content", []FileArtifact{{Path: "Dockerfile", Content: "  \n\t"}}},
		{"unrelated file", []FileArtifact{{Path: "README.md", Content: "# hello"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := classify(tt.files, "")

			if a.DetectedType != rules.TypeUnknown {
				t.Errorf("expected unknown, got %s", a.DetectedType)
			}
			if a.Confidence != 0 {
				t.Errorf("expected zero confidence, got %v", a.Confidence)
			}
			if len(a.Frameworks) != 0 || len(a.Databases) != 0 {
				t.Errorf("expected no frameworks or databases, got %+v %+v", a.Frameworks, a.Databases)
			}
		})
	}
}

func TestClassify_TieBreakFollowsCategoryOrder(t *testing.T) {
	backend := FileArtifact{Path: "api/package.json", Content: `{"dependencies":{"express":"^4.18.0"}}`}
	frontend := FileArtifact{Path: "web/package.json", Content: `{"dependencies":{"react":"^18.2.0"}}`}

	orders := map[string][]FileArtifact{
		"backend first":  {backend, frontend},
		"frontend first": {frontend, backend},
	}

	for name, files := range orders {
		t.Run(name, func(t *testing.T) {
			a := classify(files, "")
			if a.DetectedType != rules.TypeNodeJS {
				t.Errorf("expected nodejs to win the tie, got %s", a.DetectedType)
			}
		})
	}
}

func TestClassify_ScoresAccumulate(t *testing.T) {
	files := []FileArtifact{
		{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0","fastify":"^4.0.0","react":"^18.2.0"}}`},
	}

	a := classify(files, "")

	if a.DetectedType != rules.TypeNodeJS {
		t.Fatalf("expected summed nodejs score to win, got %s", a.DetectedType)
	}
	if a.Confidence != 1.0 {
		t.Errorf("expected confidence capped at 1.0, got %v", a.Confidence)
	}
	if !hasFramework(a, "express", SourceFile) || !hasFramework(a, "fastify", SourceFile) || !hasFramework(a, "react", SourceFile) {
		t.Errorf("expected all three frameworks, got %+v", a.Frameworks)
	}
}

func TestClassify_NginxInfraHint(t *testing.T) {
	files := []FileArtifact{
		{Path: "nginx.conf", Content: "server {\n  listen 80;\n  root /var/www/html;\n}"},
	}

	a := classify(files, "")

	if a.DetectedType != rules.TypeNginx {
		t.Fatalf("expected nginx, got %s", a.DetectedType)
	}
	if a.Confidence != 0.9 {
		t.Errorf("expected infra hint confidence 0.9, got %v", a.Confidence)
	}
}

func TestClassify_Description(t *testing.T) {
	t.Run("description only", func(t *testing.T) {
		a := classify(nil, "A WordPress blog backed by MySQL")

		if a.DetectedType != rules.TypeLAMP {
			t.Fatalf("expected lamp, got %s", a.DetectedType)
		}
		if a.Confidence != 0.6 {
			t.Errorf("expected confidence 0.6, got %v", a.Confidence)
		}
		if !hasFramework(a, "wordpress", SourceDescription) {
			t.Errorf("expected description-sourced wordpress, got %+v", a.Frameworks)
		}
		if len(a.Databases) != 1 || a.Databases[0].Name != "mysql" || a.Databases[0].Confidence != 0.6 {
			t.Errorf("expected description-sourced mysql, got %+v", a.Databases)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		a := classify(nil, "DJANGO admin site")
		if a.DetectedType != rules.TypePython {
			t.Errorf("expected python, got %s", a.DetectedType)
		}
	})

	t.Run("influences detected type", func(t *testing.T) {
		files := []FileArtifact{
			{Path: "package.json", Content: `{"dependencies":{"react":"^18.2.0"}}`},
		}
		a := classify(files, "Express and Node API serving the UI")

		if a.DetectedType != rules.TypeNodeJS {
			t.Errorf("expected description to tip the result to nodejs, got %s", a.DetectedType)
		}
	})

	t.Run("bundle hint raises size", func(t *testing.T) {
		files := []FileArtifact{
			{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0"}}`},
		}
		a := classify(files, "high traffic storefront")

		if a.InfrastructureNeeds.BundleSizeHint != "large" {
			t.Errorf("expected large size hint, got %s", a.InfrastructureNeeds.BundleSizeHint)
		}
		if a.EstimatedCost != (EstimatedCost{MonthlyMin: 40, MonthlyMax: 80}) {
			t.Errorf("unexpected cost estimate %+v", a.EstimatedCost)
		}
	})
}

func TestClassify_InfrastructureAndStorageNeeds(t *testing.T) {
	files := []FileArtifact{
		{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0","sharp":"^0.32.0","socket.io":"^4.7.0","redis":"^4.6.0"}}`},
	}

	a := classify(files, "")

	needs := a.InfrastructureNeeds
	if !needs.MemoryIntensive || !needs.CPUIntensive || !needs.NetworkIntensive {
		t.Errorf("expected all intensity flags, got %+v", needs)
	}
	if !a.StorageNeeds.ImageProcessing || !a.StorageNeeds.NeedsBucket {
		t.Errorf("expected image processing and bucket, got %+v", a.StorageNeeds)
	}
	if needs.BundleSizeHint != "small" {
		t.Errorf("expected intensity to push micro to small, got %s", needs.BundleSizeHint)
	}
	if a.EstimatedCost != (EstimatedCost{MonthlyMin: 26, MonthlyMax: 80}) {
		t.Errorf("unexpected cost estimate %+v", a.EstimatedCost)
	}
}

func TestClassify_MultipleDatabasesPushTier(t *testing.T) {
	files := []FileArtifact{
		{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0","pg":"^8.11.0","mysql2":"^3.6.0"}}`},
	}

	a := classify(files, "")

	if len(a.Databases) != 2 || a.Databases[0].Name != "mysql" || a.Databases[1].Name != "postgresql" {
		t.Fatalf("expected mysql then postgresql, got %+v", a.Databases)
	}
	if a.InfrastructureNeeds.BundleSizeHint != "small" {
		t.Errorf("expected small size hint, got %s", a.InfrastructureNeeds.BundleSizeHint)
	}
	if a.EstimatedCost != (EstimatedCost{MonthlyMin: 40, MonthlyMax: 120}) {
		t.Errorf("unexpected cost estimate %+v", a.EstimatedCost)
	}
}

func TestClassify_Security(t *testing.T) {
	files := []FileArtifact{
		{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0","bcrypt":"^5.1.0","multer":"^1.4.5"}}`},
		{Path: "src/models/account.js", Content: "const schema = { email: String, password: String }"},
	}

	a := classify(files, "")

	sec := a.SecurityConsiderations
	if !sec.NeedsAuth || !sec.HandlesUserData || !sec.NeedsSSL || !sec.FileUploads {
		t.Errorf("expected all security flags, got %+v", sec)
	}
}

func TestClassify_UserDataNeedsSpecificTokens(t *testing.T) {
	files := []FileArtifact{
		{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0"}}`},
		{Path: "src/client.js", Content: "class User {}\nheaders['User-Agent'] = 'bot'\nconst profile = loadProfile()\n// contact: email us"},
	}

	a := classify(files, "")
	if a.SecurityConsiderations.HandlesUserData || a.SecurityConsiderations.NeedsSSL {
		t.Errorf("expected no user data flags, got %+v", a.SecurityConsiderations)
	}

	files = append(files, FileArtifact{Path: "db/schema.sql", Content: "CREATE TABLE users (user_id SERIAL)"})
	a = classify(files, "")
	if !a.SecurityConsiderations.HandlesUserData {
		t.Error("expected a users table to count as user data")
	}
}

func TestClassify_DeterministicAndBounded(t *testing.T) {
	fixtures := [][]FileArtifact{
		nil,
		{{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0","fastify":"^4.0.0","koa":"^2.0.0","@nestjs/core":"^10.0.0"}}`}},
		{{Path: "composer.json", Content: `{"require":{"php":"^8.1","laravel/framework":"^10.0"}}`}, {Path: "public/index.php", Content: "<?php require 'vendor/autoload.php';"}},
		{{Path: "Dockerfile", Content: "FROM python:3.11"}, {Path: "requirements.txt", Content: "flask\nredis\n"}},
	}

	c := NewClassifier(rules.Default())
	for i, files := range fixtures {
		first := c.Classify(files, "python service")
		second := c.Classify(files, "python service")

		if !reflect.DeepEqual(first, second) {
			t.Errorf("fixture %d: classification is not deterministic", i)
		}
		if first.Confidence < 0 || first.Confidence > 1 {
			t.Errorf("fixture %d: confidence %v out of bounds", i, first.Confidence)
		}
	}
}

func TestNewClassifier_NilTablesUsesDefaults(t *testing.T) {
	a := NewClassifier(nil).Classify([]FileArtifact{{Path: "package.json", Content: `{"dependencies":{"express":"^4.18.0"}}`}}, "")
	if a.DetectedType != rules.TypeNodeJS {
		t.Errorf("expected nodejs, got %s", a.DetectedType)
	}
}
