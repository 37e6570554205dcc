package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/shobi-backend/internal/bootstrap"
	"github.com/angelmondragon/shobi-backend/internal/details"
	"github.com/angelmondragon/shobi-backend/internal/filter"
	"github.com/angelmondragon/shobi-backend/internal/render"
	"github.com/angelmondragon/shobi-backend/internal/session"
	"github.com/angelmondragon/shobi-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/shobi-backend/pkg/errors"
)

type cli struct {
	out        io.Writer
	loadConfig func() (*config.Config, error)

	client  string
	asJSON  bool
	res     *bootstrap.Resources
	loadErr error
}

// bootstrapAnnotation marks commands that need the catalog and favorites.
const bootstrapAnnotation = "bootstrap"

// newRootCmd builds the command tree. The returned func releases the backends
// opened by whichever command ran.
func newRootCmd(out io.Writer, loadConfig func() (*config.Config, error)) (*cobra.Command, func() error) {
	c := &cli{out: out, loadConfig: loadConfig}

	root := &cobra.Command{
		Use:           "shobi",
		Short:         "Browse the perfume catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := cmd.Annotations[bootstrapAnnotation]; !ok {
				return nil
			}
			return c.open(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.client, "client", "", "favorites client id (default: shared slot)")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(c.searchCmd(), c.showCmd(), c.favoritesCmd(), c.brandsCmd())
	return root, c.close
}

func (c *cli) close() error {
	if c.res == nil {
		return nil
	}
	err := c.res.Close()
	c.res = nil
	return err
}

var needsBootstrap = map[string]string{bootstrapAnnotation: "true"}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	res, err := bootstrap.Build(cmd.Context(), cfg, cliLogger(cfg), nil)
	if err != nil {
		return err
	}
	c.res = res
	c.loadErr = res.Holder.Load(cmd.Context())
	return nil
}

func (c *cli) session(cmd *cobra.Command, state filter.State) (*session.Session, error) {
	store, err := c.res.Favorites.Store(cmd.Context(), c.client)
	if err != nil {
		return nil, err
	}
	return session.New(session.Params{
		Catalog:   c.res.Holder.Snapshot(),
		Favorites: store,
		Options:   c.res.Options(),
		LoadErr:   c.loadErr,
		State:     state,
	}), nil
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) searchCmd() *cobra.Command {
	var (
		brand     string
		brands    []string
		genders   []string
		accords   []string
		seasons   []string
		occasions []string
		favorites bool
	)
	cmd := &cobra.Command{
		Use:         "search [query]",
		Short:       "List perfumes matching a query and filters",
		Annotations: needsBootstrap,
		Args:        cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := filter.State{
				SearchQuery:      strings.Join(args, " "),
				ShowingFavorites: favorites,
			}
			state.SelectBrand(brand)
			for category, values := range map[filter.Category][]string{
				filter.CategoryBrands:   brands,
				filter.CategoryGender:   genders,
				filter.CategoryAccords:  accords,
				filter.CategorySeason:   seasons,
				filter.CategoryOccasion: occasions,
			} {
				for _, v := range values {
					state.Activate(category, v)
				}
			}

			s, err := c.session(cmd, state)
			if err != nil {
				return err
			}
			view := s.View()
			if c.asJSON {
				if err := c.writeJSON(view); err != nil {
					return err
				}
			} else if err := render.WriteText(c.out, view); err != nil {
				return err
			}
			if c.loadErr != nil {
				return c.loadErr
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&brand, "brand", "", "show only one brand")
	f.StringSliceVar(&brands, "brands", nil, "restrict to any of these brands")
	f.StringSliceVar(&genders, "gender", nil, "gender affinity (any of)")
	f.StringSliceVar(&accords, "accord", nil, "main accord (all of)")
	f.StringSliceVar(&seasons, "season", nil, "best season (any of)")
	f.StringSliceVar(&occasions, "occasion", nil, "best occasion (any of)")
	f.BoolVar(&favorites, "favorites", false, "show only favorites")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "show <code>",
		Short:       "Show the details of one perfume",
		Annotations: needsBootstrap,
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.loadErr != nil {
				return c.loadErr
			}
			s, err := c.session(cmd, filter.State{})
			if err != nil {
				return err
			}
			code := strings.TrimSpace(args[0])
			model, ok := s.Details(code)
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("perfume %q not found", code))
			}
			if c.asJSON {
				return c.writeJSON(model)
			}
			return details.WriteText(c.out, model)
		},
	}
}

func (c *cli) favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List or toggle favorites",
	}
	cmd.AddCommand(&cobra.Command{
		Use:         "list",
		Short:       "List favorite codes",
		Annotations: needsBootstrap,
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codes, err := c.res.Favorites.List(cmd.Context(), c.client)
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.writeJSON(codes)
			}
			if len(codes) == 0 {
				_, err := fmt.Fprintln(c.out, render.EmptyFavoritesMessage)
				return err
			}
			for _, code := range codes {
				if _, err := fmt.Fprintln(c.out, code); err != nil {
					return err
				}
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:         "toggle <code>",
		Short:       "Add or remove a favorite",
		Annotations: needsBootstrap,
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.loadErr != nil {
				return c.loadErr
			}
			code := strings.TrimSpace(args[0])
			if !c.res.Holder.Snapshot().Contains(code) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("perfume %q not found", code))
			}
			member, err := c.res.Favorites.Toggle(cmd.Context(), c.client, code)
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.writeJSON(map[string]any{"code": code, "favorite": member})
			}
			verb := "removed from"
			if member {
				verb = "added to"
			}
			_, err = fmt.Fprintf(c.out, "%s %s favorites\n", code, verb)
			return err
		},
	})
	return cmd
}

func (c *cli) brandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "brands",
		Short:       "List brands with their item counts",
		Annotations: needsBootstrap,
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.loadErr != nil {
				return c.loadErr
			}
			summaries := c.res.Holder.Snapshot().BrandSummaries()
			if c.asJSON {
				return c.writeJSON(summaries)
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BRAND\tITEMS\tDESCRIPTION")
			for _, b := range summaries {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", b.Name, b.Count, b.Description)
			}
			return tw.Flush()
		},
	}
}
