package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"postcraft/internal/config"
	"postcraft/internal/util"
	"postcraft/pkg/api"
	"postcraft/pkg/onboarding"
	"postcraft/pkg/queries"
	"postcraft/pkg/querycache"
	"postcraft/pkg/session"
)

// app wires one client and one cache at boot; every command shares them.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	client   *api.Client
	cache    *querycache.Cache
	profiles *queries.BusinessProfiles
	ideas    *queries.PostIdeas
	posts    *queries.Posts
	social   *queries.Social
	onboard  *onboarding.State
	session  *session.Manager
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string
	root := &cobra.Command{
		Use:           "postcraft",
		Short:         "Client for the postcraft social post backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	root.AddCommand(
		newProfileCmd(a),
		newIdeasCmd(a),
		newPostsCmd(a),
		newSocialCmd(a),
		newRegisterCmd(a),
	)
	return root
}

func (a *app) init(configPath string) error {
	_ = godotenv.Load()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = util.InitLogger(cfg.LogLevel).With("sessionId", util.NewID())

	opts := querycache.DefaultOptions()
	opts.Logger = a.logger
	if d, err := config.ParseDuration(cfg.CacheStaleTime); err == nil && d > 0 {
		opts.StaleTime = d
	}
	if d, err := config.ParseDuration(cfg.CacheGCTime); err == nil && d > 0 {
		opts.GCTime = d
	}
	if cfg.RedisAddr != "" {
		store, err := querycache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, "")
		if err != nil {
			return err
		}
		opts.Store = store
	}

	a.cache = querycache.New(opts)
	a.client = api.NewClient(cfg.APIBaseURL, api.WithLogger(a.logger))
	a.profiles = queries.NewBusinessProfiles(a.cache, a.client)
	a.ideas = queries.NewPostIdeas(a.cache, a.client)
	a.posts = queries.NewPosts(a.cache, a.client)
	a.social = queries.NewSocial(a.cache, a.client)
	a.onboard = onboarding.New(a.profiles)
	a.session = session.NewManager()
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// requireProfileID resolves the current business profile id or fails with a
// hint to onboard first.
func (a *app) requireProfileID(cmd *cobra.Command) (string, error) {
	id, err := a.profiles.ProfileID(cmd.Context())
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("no business profile yet; run %q first", "postcraft profile create")
	}
	return id, nil
}
