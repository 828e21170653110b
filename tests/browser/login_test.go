package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestLogin_AdminLandsOnDashboard verifies the admin login flow ends on
// the dashboard with the stat blocks rendered from backend data.
func TestLogin_AdminLandsOnDashboard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page, "admin@test.com", "/admin/dashboard")

	if err := page.Locator("h1:has-text('Panel de Administración')").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("dashboard title not shown: %v", err)
	}

	// The stats come from the fake backend: 12 users total.
	body, err := page.Locator("body").InnerText()
	if err != nil {
		t.Fatalf("failed to read page text: %v", err)
	}
	if !strings.Contains(body, "12") {
		t.Errorf("dashboard does not show the user total, got:\n%s", body)
	}
}

// TestLogin_BadPasswordStaysOnLogin verifies a rejected login re-renders
// the form with the backend's message.
func TestLogin_BadPasswordStaysOnLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=correo]").Fill("admin@test.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("wrong-password"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}

	if err := page.Locator(".error").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("error message not shown after bad login: %v", err)
	}
}

// TestLogin_StudentLandsOnStudentDashboard verifies role-based routing.
func TestLogin_StudentLandsOnStudentDashboard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page, "alumno@test.com", "/alumno/dashboard")

	if err := page.Locator("h1:has-text('Mi Dashboard')").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("student dashboard title not shown: %v", err)
	}
}

// TestLogin_GuardRedirectsAnonymous verifies a protected page bounces to
// the login form with the return URL preserved.
func TestLogin_GuardRedirectsAnonymous(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/admin/usuarios"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if !strings.Contains(page.URL(), "/login") {
		t.Fatalf("expected redirect to /login, got %s", page.URL())
	}
	if !strings.Contains(page.URL(), "returnUrl") {
		t.Errorf("expected returnUrl in login redirect, got %s", page.URL())
	}
}
