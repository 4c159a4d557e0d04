package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/aussiebroadwan/storefront/internal/storefront/notify"
	"github.com/aussiebroadwan/storefront/internal/storefront/router"
	"github.com/aussiebroadwan/storefront/internal/storefront/session"
	"github.com/aussiebroadwan/storefront/pkg/apiclient"
)

// ErrUsage is returned for unknown commands or bad arguments.
var ErrUsage = errors.New("usage error")

const usage = `usage: storefront <command> [flags]

commands:
  routes                               list the route table
  navigate <path>                      navigate to path and print where you land
  login --token T                      log in with an existing token
  login --name N --password P          log in with credentials
  register --name N --password P       create an account and log in
  logout                               clear the session
  whoami                               print the restored session
`

// Run dispatches a single command. Each call behaves like one page load.
func (app *Application) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(app.out, usage)
		return ErrUsage
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "routes":
		err = app.cmdRoutes()
	case "navigate":
		err = app.cmdNavigate(ctx, rest)
	case "login":
		err = app.cmdLogin(ctx, rest)
	case "register":
		err = app.cmdRegister(ctx, rest)
	case "logout":
		err = app.cmdLogout(ctx)
	case "whoami":
		err = app.cmdWhoami(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(app.out, usage)
		return nil
	default:
		fmt.Fprint(app.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}

	app.printNotification()
	return err
}

func (app *Application) cmdRoutes() error {
	w := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH\tAUTH\tADMIN\tCOMPONENT")
	for _, r := range app.router.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Path, yesNo(r.RequiresAuth), yesNo(r.RequiresAdmin), r.Component)
	}
	return w.Flush()
}

func (app *Application) cmdNavigate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: navigate takes exactly one path", ErrUsage)
	}
	return app.navigate(ctx, args[0])
}

func (app *Application) navigate(ctx context.Context, target string) error {
	loc, err := app.router.Push(ctx, target)
	if err != nil {
		return err
	}

	route, _, err := app.router.Resolve(loc.FullPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "%s (%s, %s)\n", loc.FullPath, loc.Name, route.Component)
	keys := make([]string, 0, len(loc.Params))
	for key := range loc.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(app.out, "  %s=%s\n", key, loc.Params[key])
	}

	// An expiry notice from the guard takes precedence.
	if loc.Name == router.RouteLogin && target != loc.FullPath && !app.notifier.State().Visible {
		app.notifier.Show(notify.Options{Message: "Please log in to continue", Color: notify.ColorInfo})
	}
	return nil
}

func (app *Application) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	token := fs.String("token", "", "existing bearer token")
	name := fs.String("name", "", "account name")
	password := fs.String("password", "", "account password")
	redirect := fs.String("redirect", "", "path to open after logging in")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	switch {
	case *token != "" && *name != "":
		return fmt.Errorf("%w: use either --token or --name/--password", ErrUsage)
	case *token == "" && (*name == "" || *password == ""):
		return fmt.Errorf("%w: login needs --token or --name and --password", ErrUsage)
	}

	if *token == "" {
		issued, err := app.api.Login(ctx, *name, *password)
		if err != nil {
			app.notifyError("Login failed", err)
			return err
		}
		*token = issued
	}

	if err := app.establish(ctx, *token); err != nil {
		return err
	}

	if *redirect != "" {
		return app.navigate(ctx, *redirect)
	}
	return nil
}

func (app *Application) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "account name")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *name == "" || *password == "" {
		return fmt.Errorf("%w: register needs --name and --password", ErrUsage)
	}

	token, err := app.api.Register(ctx, *name, *password)
	if err != nil {
		app.notifyError("Registration failed", err)
		return err
	}
	return app.establish(ctx, token)
}

// establish runs Session.Login and reports the outcome. A lookup failure
// after the token is stored leaves the session authenticated but
// unidentified; the next navigation retries the lookup.
func (app *Application) establish(ctx context.Context, token string) error {
	err := app.session.Login(ctx, token)

	var inconsistent *session.InconsistencyError
	switch {
	case errors.As(err, &inconsistent):
		app.logger.Warn("logged in but user lookup failed", "step", inconsistent.Step, "err", inconsistent.Err)
		app.notifier.Show(notify.Options{Message: "Logged in, but your profile could not be loaded", Color: notify.ColorWarning})
		return nil
	case err != nil:
		app.notifyError("Login failed", err)
		return err
	}

	app.notifier.Show(notify.Options{Message: "Welcome, " + app.session.UserName()})
	return nil
}

func (app *Application) cmdLogout(ctx context.Context) error {
	if err := app.session.Logout(ctx); err != nil {
		app.notifyError("Logout failed", err)
		return err
	}
	app.notifier.Show(notify.Options{Message: "Logged out", Color: notify.ColorInfo})
	return nil
}

// cmdWhoami performs the initial navigation to Home so the guard can
// restore the session, then prints it.
func (app *Application) cmdWhoami(ctx context.Context) error {
	if _, err := app.router.Push(ctx, "/"); err != nil {
		return err
	}

	snap := app.session.Snapshot()
	fmt.Fprintf(app.out, "state: %s\n", app.session.State())
	if snap.User != nil {
		fmt.Fprintf(app.out, "user:  %s (id %d)\n", snap.User.Name, snap.User.ID)
	}
	if snap.RoleID != nil {
		fmt.Fprintf(app.out, "role:  %d\n", *snap.RoleID)
	}
	fmt.Fprintf(app.out, "admin: %s\n", yesNo(snap.IsAdmin))
	return nil
}

func (app *Application) notifyError(prefix string, err error) {
	message := prefix
	var statusErr *apiclient.HTTPStatusError
	var netErr *apiclient.NetworkError
	switch {
	case errors.As(err, &statusErr) && statusErr.Description != "":
		message = prefix + ": " + statusErr.Description
	case errors.As(err, &netErr) && netErr.Timeout():
		message = prefix + ": the server took too long to respond"
	case errors.As(err, &netErr):
		message = prefix + ": the server could not be reached"
	}
	app.notifier.Show(notify.Options{Message: message, Color: notify.ColorError})
}

func (app *Application) printNotification() {
	state := app.notifier.State()
	if !state.Visible {
		return
	}
	fmt.Fprintf(app.out, "[%s] %s\n", state.Color, state.Message)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
