package main

// seedRepos populates the store with two small repositories that give the
// inspection tools something interesting to walk: nested directories, mixed
// extensions, and files without any extension.
func seedRepos(s *store) {
	const owner = "acme"

	s.seed(owner, "billing-api", "README.md", readme("billing-api"))
	s.seed(owner, "billing-api", "Makefile", makefile())
	s.seed(owner, "billing-api", "go.mod", "module github.com/acme/billing-api\n\ngo 1.25\n")
	s.seed(owner, "billing-api", "cmd/server/main.go", mainGo())
	s.seed(owner, "billing-api", "internal/invoice/invoice.go", invoiceGo())
	s.seed(owner, "billing-api", "internal/invoice/invoice_test.go", invoiceTestGo())
	s.seed(owner, "billing-api", "docs/architecture.md", architectureDoc())
	s.seed(owner, "billing-api", "deploy/values.yaml", deployValues("billing-api"))

	s.seed(owner, "user-service", "README.md", readme("user-service"))
	s.seed(owner, "user-service", "src/index.js", indexJs())
	s.seed(owner, "user-service", "src/routes/users.js", usersJs())
	s.seed(owner, "user-service", "package.json", packageJSON())
	s.seed(owner, "user-service", "deploy/values.yaml", deployValues("user-service"))
}

func readme(app string) string {
	return "# " + app + "\n\nInternal service. See docs/ for details.\n"
}

func makefile() string {
	return "all: build\n\nbuild:\n\tgo build ./...\n\ntest:\n\tgo test ./...\n"
}

func mainGo() string {
	return `package main

import (
	"fmt"
	"net/http"
)

func main() {
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	http.ListenAndServe(":8080", nil)
}
`
}

func invoiceGo() string {
	return `package invoice

// Total sums the line amounts in cents.
func Total(lines []int) int {
	sum := 0
	for _, l := range lines {
		sum += l
	}
	return sum
}
`
}

func invoiceTestGo() string {
	return `package invoice

import "testing"

func TestTotal(t *testing.T) {
	if got := Total([]int{100, 250}); got != 350 {
		t.Fatalf("got %d", got)
	}
}
`
}

func architectureDoc() string {
	return `# Architecture

The billing API is a single stateless service in front of the ledger
database. Invoices are immutable once issued.
`
}

func deployValues(app string) string {
	return `replicaCount: 2
image:
  repository: acme/` + app + `
  tag: v1.0.0
`
}

func indexJs() string {
	return `const express = require("express");
const app = express();
app.use("/users", require("./routes/users"));
app.listen(3000);
`
}

func usersJs() string {
	return `const router = require("express").Router();
router.get("/", (req, res) => res.json([]));
module.exports = router;
`
}

func packageJSON() string {
	return `{
  "name": "user-service",
  "version": "1.0.0",
  "dependencies": {
    "express": "^4.19.0"
  }
}
`
}
