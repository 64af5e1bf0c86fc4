package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"cms-admin/internal/catalog"
	"cms-admin/internal/cmsapi"
	"cms-admin/internal/config"
	"cms-admin/internal/editor"
	"cms-admin/internal/synchronizer"

	"github.com/spf13/cobra"
)

type app struct {
	cfg      config.Config
	out      io.Writer
	client   *cmsapi.Client
	notifier *printer
}

func newRootCmd(cfg config.Config, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, out: out, notifier: newPrinter(out)}

	root := &cobra.Command{
		Use:          "pagectl",
		Short:        "pagectl - compose CMS pages from typed content blocks",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.APIBaseURL == "" {
				return fmt.Errorf("api base URL is not configured")
			}
			a.client = cmsapi.NewClient(a.cfg.APIBaseURL, a.cfg.APIToken, a.cfg.APITimeout)
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&a.cfg.APIBaseURL, "api", cfg.APIBaseURL, "CMS backend base URL")
	root.PersistentFlags().StringVar(&a.cfg.APIToken, "token", cfg.APIToken, "bearer token for the CMS backend")

	root.AddCommand(
		a.componentsCmd(),
		a.pagesCmd(),
		a.deleteCmd(),
		a.showCmd(),
		a.createCmd(),
		a.addCmd(),
		a.setCmd(),
		a.moveCmd(),
		a.removeCmd(),
	)
	return root
}

func (a *app) deps(ctx context.Context) (editor.Deps, error) {
	cat, err := catalog.Load(ctx, a.client)
	if err != nil {
		return editor.Deps{}, err
	}
	return editor.Deps{
		Pages: a.client,
		Synchronizer: synchronizer.New(a.client,
			synchronizer.WithCatalog(cat),
			synchronizer.WithConcurrency(a.cfg.SaveConcurrency),
		),
		Catalog:  cat,
		Notifier: a.notifier,
		Workers:  a.cfg.PersistWorkers,
	}, nil
}

// open starts an edit session on the page named by arg.
func (a *app) open(ctx context.Context, arg string) (*editor.Session, error) {
	pageID, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || pageID == 0 {
		return nil, fmt.Errorf("invalid page id %q", arg)
	}
	deps, err := a.deps(ctx)
	if err != nil {
		return nil, err
	}
	return editor.Open(ctx, deps, pageID)
}

func (a *app) componentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the block types that can be added to a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(cmd.Context(), a.client)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tNAME\tFIELDS")
			for _, e := range cat.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Type, e.Name, strings.Join(e.Fields, ", "))
			}
			return w.Flush()
		},
	}
}

func (a *app) pagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := a.client.ListPages(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSLUG\tSTATUS\tTITLE")
			for _, p := range pages {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Slug, p.Status, p.Title)
			}
			return w.Flush()
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <page-id>",
		Short: "Delete a page and all of its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || pageID == 0 {
				return fmt.Errorf("invalid page id %q", args[0])
			}
			if err := a.client.DeletePage(cmd.Context(), pageID); err != nil {
				a.notifier.Error("Failed to delete page", err)
				return err
			}
			a.notifier.Success("Page deleted successfully")
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <page-id>",
		Short: "Show a page and its blocks in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			a.printSession(s)
			return nil
		},
	}
}

func (a *app) createCmd() *cobra.Command {
	var (
		form   editor.PageForm
		blocks []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page with its blocks",
		Long: `Create a page with its blocks.

Examples:
  # Page with a text block and a call to action
  pagectl create --title Home --slug home \
    --block "text:heading=Welcome,body=Hello there" \
    --block "cta:label=Contact,url=/contact"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := a.deps(cmd.Context())
			if err != nil {
				return err
			}
			s := editor.NewSession(deps)
			defer s.Close()
			s.SetForm(form)

			for _, spec := range blocks {
				if err := addBlock(s, spec); err != nil {
					return err
				}
			}
			if err := s.Save(cmd.Context()); err != nil {
				return err
			}
			a.printSession(s)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Title, "title", "", "page title")
	cmd.Flags().StringVar(&form.Slug, "slug", "", "page slug")
	cmd.Flags().StringVar(&form.Status, "status", "draft", "draft or published")
	cmd.Flags().StringArrayVar(&blocks, "block", nil, "block as type[:key=value,...], repeatable")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <page-id> <type[:key=value,...]>",
		Short: "Append a block to a page and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			if err := addBlock(s, args[1]); err != nil {
				return err
			}
			return s.Save(cmd.Context())
		},
	}
}

func (a *app) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <page-id> <position> <key> <value>",
		Short: "Set one field of a block and save the page",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			b, err := blockAt(s, args[1])
			if err != nil {
				return err
			}
			s.SetField(b, args[2], args[3])
			return s.Save(cmd.Context())
		},
	}
}

func (a *app) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <page-id> <from> <to>",
		Short: "Move a block to another position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			from, err1 := strconv.Atoi(args[1])
			to, err2 := strconv.Atoi(args[2])
			if err1 != nil || err2 != nil {
				s.Close()
				return fmt.Errorf("positions must be integers")
			}
			if err := s.Reorder(cmd.Context(), from, to); err != nil {
				s.Close()
				return err
			}
			// waits for the background order write
			if err := s.Close(); err != nil {
				return fmt.Errorf("block order not saved: %w", err)
			}
			a.printSession(s)
			return nil
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <page-id> <position>",
		Short: "Delete a block from a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			b, err := blockAt(s, args[1])
			if err != nil {
				return err
			}
			return s.RemoveBlock(cmd.Context(), b)
		},
	}
}

func (a *app) printSession(s *editor.Session) {
	form := s.Form()
	fmt.Fprintf(a.out, "Page %d: %s (/%s, %s)\n", s.PageID(), form.Title, form.Slug, form.Status)
	for _, b := range s.Blocks() {
		fmt.Fprintf(a.out, "  [%d] %s (%s)\n", b.Order, b.Name, b.Type)
		for _, key := range sortedKeys(b.Fields) {
			fmt.Fprintf(a.out, "      %s: %s\n", key, b.Fields[key])
		}
	}
}
