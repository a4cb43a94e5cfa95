package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli"

	"github.com/blankon/ghrs/internal/config"
	"github.com/blankon/ghrs/internal/release/repository"
	"github.com/blankon/ghrs/internal/release/usecase"
)

var (
	version string

	errUnexpectedArgs = errors.New("unexpected arguments")
)

// commandNames are the first positional arguments that select a subcommand.
var commandNames = map[string]bool{
	"stats": true, "s": true,
	"tags": true, "t": true,
	"upgrade": true,
	"help": true, "h": true,
}

// valueFlags are the top level flags that consume the next argument.
var valueFlags = map[string]bool{
	"config": true, "c": true,
	"user": true, "u": true,
	"repo": true, "r": true,
}

func statsFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "user, u",
			Usage: "GitHub user or organization (or first argument)",
		},
		cli.StringFlag{
			Name:  "repo, r",
			Usage: "GitHub repository (or second argument)",
		},
		cli.BoolFlag{
			Name:  "latest, l",
			Usage: "Only fetch the latest release",
		},
		cli.BoolFlag{
			Name:  "details, d",
			Usage: "Print tag, creation date and every asset of each release",
		},
	}
}

func stringFlag(c *cli.Context, name string) string {
	if value := c.String(name); value != "" {
		return value
	}
	return c.GlobalString(name)
}

func boolFlag(c *cli.Context, name string) bool {
	return c.Bool(name) || c.GlobalBool(name)
}

// userAndRepo reads user and repo from flags, falling back to positional
// arguments in that order. Positional arguments left over are an error.
func userAndRepo(c *cli.Context) (user string, repo string, err error) {
	user = stringFlag(c, "user")
	repo = stringFlag(c, "repo")
	args := c.Args()
	consumed := 0
	if user == "" {
		user = args.Get(consumed)
		consumed++
	}
	if repo == "" {
		repo = args.Get(consumed)
		consumed++
	}
	if len(args) > consumed {
		err = fmt.Errorf("%w: %s", errUnexpectedArgs, strings.Join(args[consumed:], " "))
	}
	return
}

// hoistFlags moves flags given after the positional arguments of the
// default action in front of them, so "ghrs octo hello --latest" parses like
// "ghrs --latest octo hello". Subcommands reorder their own arguments and
// are left untouched.
func hoistFlags(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	flags := []string{}
	positional := []string{}
	rest := argv[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if arg == "--" {
			positional = append(positional, rest[i:]...)
			break
		}
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			flags = append(flags, arg)
			name := strings.TrimLeft(arg, "-")
			if !strings.Contains(name, "=") && valueFlags[name] && i+1 < len(rest) {
				i++
				flags = append(flags, rest[i])
			}
			continue
		}
		if len(positional) == 0 && commandNames[arg] {
			return argv
		}
		positional = append(positional, arg)
	}

	hoisted := append([]string{argv[0]}, flags...)
	return append(hoisted, positional...)
}

// runID returns the correlation id of the app's run.
func runID(app *cli.App) string {
	id, _ := app.Metadata["runID"].(string)
	return id
}

// execute runs app with argv after hoisting trailing flags.
func execute(app *cli.App, argv []string) error {
	return app.Run(hoistFlags(argv))
}

func newApp(out io.Writer) *cli.App {
	var ghrsConfig config.GhrsConfig
	id := uuid.New().String()

	app := cli.NewApp()
	app.Name = "ghrs"
	app.Usage = "Fetch release stats for a GitHub repository"
	app.UsageText = "ghrs [--latest] [--details] <user> <repo>"
	app.Author = "BlankOn Developer"
	app.Email = "blankon-dev@googlegroups.com"
	app.Version = version
	app.Writer = out
	app.Metadata = map[string]interface{}{"runID": id}

	app.Flags = append([]cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Path to a config file (built-in defaults when omitted)",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Write diagnostics to stderr",
		},
	}, statsFlags()...)

	app.Before = func(c *cli.Context) (err error) {
		if c.Bool("verbose") {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(ioutil.Discard)
		}
		log.SetPrefix(id + " ")

		ghrsConfig, err = config.LoadConfig(c.String("config"))
		if err != nil {
			log.Printf("[Before] couldn't load config: %v", err)
		}
		return
	}

	runStats := func(c *cli.Context) (err error) {
		user, repo, err := userAndRepo(c)
		if err != nil {
			return
		}
		api := repository.NewGitHubAPI(ghrsConfig.APIURL, ghrsConfig.UserAgent, ghrsConfig.RequestTimeout())
		stats := usecase.NewStatsUsecase(api, repository.GitHubDecoder{}, out)

		_, err = stats.Run(context.Background(), usecase.StatsInput{
			User:    user,
			Repo:    repo,
			Latest:  boolFlag(c, "latest"),
			Details: boolFlag(c, "details"),
		})
		return
	}

	app.Action = runStats

	app.Commands = []cli.Command{
		{
			Name:      "stats",
			Aliases:   []string{"s"},
			Usage:     "Print asset counts of recent releases (default command)",
			ArgsUsage: "<user> <repo>",
			Flags:     statsFlags(),
			Action:    runStats,
		},
		{
			Name:      "tags",
			Aliases:   []string{"t"},
			Usage:     "List remote git tags, newest version first",
			ArgsUsage: "<user> <repo>",
			Flags:     statsFlags()[:2],
			Action: func(c *cli.Context) (err error) {
				user, repo, err := userAndRepo(c)
				if err != nil {
					return
				}
				tags := usecase.NewTagsUsecase(repository.NewGitRemote(ghrsConfig.GitURL), out)
				_, err = tags.Run(context.Background(), usecase.TagsInput{User: user, Repo: repo})
				return
			},
		},
		{
			Name:  "upgrade",
			Usage: "Upgrade ghrs to the latest release",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "yes, y",
					Usage: "Do not ask for confirmation",
				},
			},
			Action: func(c *cli.Context) (err error) {
				api := repository.NewGitHubAPI(ghrsConfig.APIURL, ghrsConfig.UserAgent, ghrsConfig.RequestTimeout())
				upgrade := usecase.NewUpgradeUsecase(api, repository.BinaryUpdater{}, repository.PromptConfirmer{}, out)
				_, err = upgrade.Run(context.Background(), usecase.UpgradeInput{
					Owner:          ghrsConfig.Update.Owner,
					Repo:           ghrsConfig.Update.Repo,
					Asset:          ghrsConfig.UpdateAssetName(),
					CurrentVersion: version,
					AssumeYes:      c.Bool("yes"),
				})
				return
			},
		},
	}

	return app
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	app := newApp(os.Stdout)
	err := execute(app, os.Args)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
		log.Fatalf("run %s: %v", runID(app), err)
	}
}
