package detector

import "stackplan/pkg/rules"

// PackageManager is the dependency tool a project uses, with the commands
// a deployment runs to install and build it
type PackageManager struct {
	Name    string `json:"name"`
	Install string `json:"install"`
	Build   string `json:"build,omitempty"`
}

type lockfileRule struct {
	files []string
	pm    PackageManager
}

// Lockfile precedence matters: a yarn berry project also carries yarn.lock.
var jsManagers = []lockfileRule{
	{[]string{"bun.lockb", "bun.lock"}, PackageManager{Name: "bun", Install: "bun install", Build: "bun run build"}},
	{[]string{".yarnrc.yml"}, PackageManager{Name: "yarn-berry", Install: "yarn install", Build: "yarn build"}},
	{[]string{"pnpm-lock.yaml"}, PackageManager{Name: "pnpm", Install: "pnpm install", Build: "pnpm run build"}},
	{[]string{"yarn.lock"}, PackageManager{Name: "yarn", Install: "yarn install", Build: "yarn build"}},
	{[]string{"package.json", "package-lock.json"}, PackageManager{Name: "npm", Install: "npm install", Build: "npm run build"}},
}

var pythonManagers = []lockfileRule{
	{[]string{"uv.lock"}, PackageManager{Name: "uv", Install: "uv sync"}},
	{[]string{"pdm.lock"}, PackageManager{Name: "pdm", Install: "pdm install --prod"}},
	{[]string{"poetry.lock"}, PackageManager{Name: "poetry", Install: "poetry install"}},
	{[]string{"Pipfile.lock", "Pipfile"}, PackageManager{Name: "pipenv", Install: "pipenv install"}},
	{[]string{"requirements.txt", "pyproject.toml", "setup.py"}, PackageManager{Name: "pip", Install: "pip install -r requirements.txt"}},
}

var phpManagers = []lockfileRule{
	{[]string{"composer.json", "composer.lock"}, PackageManager{Name: "composer", Install: "composer install --no-dev --optimize-autoloader"}},
}

// detectPackageManager picks the package manager for the detected type from
// the files present. Only the file names are consulted.
func detectPackageManager(appType rules.AppType, files []FileArtifact) *PackageManager {
	var candidates []lockfileRule
	switch appType {
	case rules.TypeNodeJS, rules.TypeReact:
		candidates = jsManagers
	case rules.TypePython:
		candidates = pythonManagers
	case rules.TypeLAMP:
		candidates = phpManagers
	default:
		return nil
	}

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[baseName(f.Path)] = true
	}

	for _, rule := range candidates {
		for _, name := range rule.files {
			if present[name] {
				pm := rule.pm
				return &pm
			}
		}
	}
	return nil
}
