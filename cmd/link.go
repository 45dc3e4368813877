package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/finassist/finassist/internal/link"
	"github.com/finassist/finassist/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "link core records to provider records",
}

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	linkCmd.AddCommand(addLinkCmd())
	linkCmd.AddCommand(removeLinkCmd())
	linkCmd.AddCommand(listLinksCmd())
}

func addLinkCmd() *cobra.Command {
	var (
		coreKind   string
		coreID     string
		pluginKind string
		pluginID   string
		replace    bool
	)

	command := &cobra.Command{
		Use:   "add",
		Short: "Link a core record to a provider record",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			app := newApp()

			if coreID == "" || pluginID == "" {
				logrus.Error("core id and plugin id are required")
				return
			}

			if replace {
				// the service never auto-replaces; make the unlink explicit here
				if err := app.links.DeleteFor(ctx, pluginKind, pluginID); err != nil {
					logrus.Fatalf("removing existing link: %v", err)
				}
				if err := app.links.DeleteFor(ctx, coreKind, coreID); err != nil {
					logrus.Fatalf("removing existing link: %v", err)
				}
			}

			created, err := app.links.Create(ctx, coreKind, coreID, pluginKind, pluginID)
			if errors.Is(err, link.ErrConflict) {
				fmt.Println("already linked; pass --replace to relink")
				return
			}
			if err != nil {
				logrus.Fatalf("creating link: %v", err)
			}

			fmt.Printf("linked %s/%s -> %s/%s (%s)\n", created.CoreKind, created.CoreID, created.PluginKind, created.PluginID, created.ID)
		},
	}

	command.Flags().StringVarP(&coreKind, "core-kind", "c", model.KindAccount, "core record kind")
	command.Flags().StringVarP(&coreID, "core-id", "i", "", "core record id")
	command.Flags().StringVarP(&pluginKind, "plugin-kind", "k", model.KindBudgetAccount, "plugin record kind")
	command.Flags().StringVarP(&pluginID, "plugin-id", "p", "", "plugin record id")
	command.Flags().BoolVar(&replace, "replace", false, "unlink both sides first")

	return command
}

func removeLinkCmd() *cobra.Command {
	var (
		kind string
		id   string
	)

	command := &cobra.Command{
		Use:   "remove",
		Short: "Remove any link referencing a record",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			app := newApp()

			if id == "" {
				logrus.Error("record id is required")
				return
			}

			if err := app.links.DeleteFor(ctx, kind, id); err != nil {
				logrus.Fatalf("removing link: %v", err)
			}
			fmt.Printf("unlinked %s/%s\n", kind, id)
		},
	}

	command.Flags().StringVarP(&kind, "kind", "c", model.KindAccount, "record kind (either side)")
	command.Flags().StringVarP(&id, "id", "i", "", "record id")

	return command
}

func listLinksCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "List links with their resolved records",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			app := newApp()

			links, err := app.store.ListLinksByPluginKind(ctx, model.KindBudgetAccount)
			if err != nil {
				logrus.Fatalf("listing links: %v", err)
			}

			for _, l := range links {
				core, plugin, err := app.links.Resolve(ctx, l)
				if errors.Is(err, link.ErrOrphaned) {
					fmt.Printf("%s: dangling, removed\n", l.ID)
					continue
				}
				if err != nil {
					logrus.Errorf("resolving link %s: %v", l.ID, err)
					continue
				}
				fmt.Printf("%s: %s/%s (%s) -> %s/%s (%s)\n",
					l.ID, l.CoreKind, l.CoreID, core.EntityName(),
					l.PluginKind, l.PluginID, plugin.EntityName())
			}
		},
	}

	return command
}
