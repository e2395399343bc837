package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"stackplan/pkg/optimizer"
)

// expr is a workflow expression token written verbatim
type expr string

func expression(body string) expr {
	return expr("${{ " + body + " }}")
}

// value is generated text, quoted when YAML needs it
type value string

// workflowWriter assembles the workflow line by line. Plain strings are
// literal syntax, value parts are quoted as needed and expr parts are never
// touched.
type workflowWriter struct {
	b strings.Builder
}

func (w *workflowWriter) line(depth int, parts ...any) {
	w.b.WriteString(strings.Repeat("  ", depth))
	for _, p := range parts {
		switch v := p.(type) {
		case expr:
			w.b.WriteString(string(v))
		case value:
			w.b.WriteString(quoteScalar(string(v)))
		case string:
			w.b.WriteString(v)
		default:
			w.b.WriteString(fmt.Sprint(v))
		}
	}
	w.b.WriteByte('\n')
}

func (w *workflowWriter) blank() {
	w.b.WriteByte('\n')
}

func (w *workflowWriter) String() string {
	return w.b.String()
}

func quoteScalar(s string) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(string(out), "\n")
}

func sourceGlob(sourceDir string) string {
	if sourceDir == "" || sourceDir == "." {
		return "**"
	}
	return sourceDir + "/**"
}

// pipeline renders the GitHub Actions workflow that hands the descriptor to
// the reusable deploy workflow
func (e *Emitter) pipeline(opt optimizer.Optimization, n Naming, env optimizer.Environment) string {
	w := &workflowWriter{}
	paths := []string{sourceGlob(n.SourceDir), n.DescriptorPath, n.PipelinePath()}

	w.line(0, "name: ", value("Deploy "+n.AppName))
	w.blank()

	w.line(0, "on:")
	w.line(1, "push:")
	w.line(2, "branches:")
	w.line(3, "- main")
	w.line(2, "paths:")
	for _, p := range paths {
		w.line(3, "- ", value(p))
	}
	w.line(1, "pull_request:")
	w.line(2, "paths:")
	for _, p := range paths {
		w.line(3, "- ", value(p))
	}
	w.line(1, "workflow_dispatch:")
	w.line(2, "inputs:")
	w.line(3, "environment:")
	w.line(4, "description: Target environment")
	w.line(4, "required: true")
	w.line(4, "type: choice")
	w.line(4, "default: ", value(string(env)))
	w.line(4, "options:")
	for _, option := range optimizer.Environments {
		w.line(5, "- ", value(string(option)))
	}
	w.blank()

	w.line(0, "concurrency:")
	w.line(1, "group: ", "deploy-", n.AppName, "-", expression("github.ref"))
	w.line(1, "cancel-in-progress: false")
	w.blank()

	w.line(0, "jobs:")
	w.line(1, "deploy:")
	w.line(2, "uses: ", value(n.ReusableWorkflow))
	w.line(2, "with:")
	w.line(3, "config-file: ", value(n.DescriptorPath))
	w.line(3, "aws-region: ", value(n.Region))
	w.line(3, "environment: ", expression(fmt.Sprintf("inputs.environment || '%s'", env)))
	w.line(3, "dry-run: ", expression("github.event_name == 'pull_request'"))
	w.line(2, "secrets: inherit")
	w.blank()

	w.line(1, "summary:")
	w.line(2, "needs: deploy")
	w.line(2, "if: ", expression("always()"))
	w.line(2, "runs-on: ubuntu-latest")
	w.line(2, "steps:")
	w.line(3, "- name: Report deployment")
	w.line(4, "env:")
	w.line(5, "DEPLOY_RESULT: ", expression("needs.deploy.result"))
	w.line(5, "INSTANCE_ID: ", expression("needs.deploy.outputs.instance_id"))
	w.line(5, "PUBLIC_IP: ", expression("needs.deploy.outputs.public_ip"))
	w.line(5, "APP_URL: ", expression("needs.deploy.outputs.application_url"))
	w.line(4, "run: |")
	w.line(5, "{")
	w.line(6, `echo "## Deployment summary: `, n.AppName, `"`)
	w.line(6, `echo ""`)
	w.line(6, `echo "| Field | Value |"`)
	w.line(6, `echo "| --- | --- |"`)
	w.line(6, `echo "| Result | ${DEPLOY_RESULT} |"`)
	w.line(6, `echo "| Instance | ${INSTANCE_ID:-n/a} |"`)
	w.line(6, `echo "| Public IP | ${PUBLIC_IP:-n/a} |"`)
	w.line(6, `echo "| URL | ${APP_URL:-n/a} |"`)
	w.line(6, `echo "| Bundle | `, opt.RecommendedBundle.Name, " (", string(opt.RecommendedBundle.EC2Equivalent), `) |"`)
	w.line(6, `echo "| Estimated cost | USD `, fmt.Sprintf("%.2f", opt.CostBreakdown.Total), ` per month |"`)
	w.line(5, `} >> "$GITHUB_STEP_SUMMARY"`)

	return w.String()
}
