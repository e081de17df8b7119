// Copyright 2021 Jonathan Amsterdam.

/*
Package commander builds command-line programs from a flat list of
declaratively named handlers. Handlers are bound under hierarchical,
underscore-delimited names; the package turns them into a tree of nested
subcommands, synthesizing intermediate groups where no handler is declared,
and dispatches a parsed invocation to exactly one handler.

# Declaration

An application declares its commands as bindings. A binding name carries the
"do_" prefix; the rest of the name, split on underscores, is the command's
path:

	app := commander.New("buildtool", "builds and deploys the project").
		Version("1.0.0").
		Depth(2)
	app.Bind("do_build", build, "build the project")
	app.Bind("do_deploy_prod_docker", deployDocker, "deploy to prod with docker",
		commander.Opt("-f", "--force").OfKind(commander.Bool).Help("skip confirmation"))

With Depth(2), "deploy_prod_docker" is invoked as

	buildtool deploy prod docker -f

and "deploy" and "prod" become synthesized groups that print help when
invoked on their own. With Depth(0) no splitting occurs and every command
sits at the top level under its full underscored name. Depth only gates
whether splitting happens; once enabled, names may nest to any depth.

# Options

Options are immutable values built with Opt. Tokens with dashes declare a
flag and all become aliases of one value; a dashless token declares a
positional argument. Group bundles a common option set for reuse across
commands:

	common := commander.Group(
		commander.Opt("-v", "--verbose").OfKind(commander.Bool).Help("more detail"),
		commander.Opt("-n", "--dry-run").OfKind(commander.Bool).Help("print, don't do"),
	)
	app.Bind("do_deploy_prod_docker", deployDocker, "deploy to prod with docker", common)

A handler receives the parsed values:

	func deployDocker(ctx context.Context, opts *commander.Values) error {
		if opts.Bool("verbose") { ... }
		return nil
	}

# Execution

Run parses an explicit argument vector; Main wraps Run and maps the outcome
to a process exit code (0 for success, help and version output, 1 for a
handler failure, 2 for a bad invocation). An empty argument vector is
replaced by the configured default arguments, "--help" unless overridden.

The namespace tree is rebuilt from the registry on every run and discarded
after dispatch. A Commander must not be shared across concurrent runs.
*/
package commander
