package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licenseaudit/pkg/deps"
)

// lookupCommand creates the lookup command, which resolves one package's
// license through the same cached registry client a scan uses.
func (c *CLI) lookupCommand() *cobra.Command {
	var noCache, refresh bool

	registries := make([]string, len(ecosystems))
	for i, e := range ecosystems {
		registries[i] = e.Registry
	}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("lookup [%s] <package>", strings.Join(registries, "|")),
		Short: "Look up the license of a single package",
		Example: `  licenseaudit lookup npm left-pad
  licenseaudit lookup npm @types/node
  licenseaudit lookup packagist monolog/monolog`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: registries,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			e, err := deps.FindEcosystem(args[0], ecosystems...)
			if err != nil {
				return err
			}
			name := args[1]

			store, keyer := c.newCache(ctx, noCache)
			defer store.Close()
			fetcher, err := e.Fetcher(c.clientConfig(e, store, keyer))
			if err != nil {
				return err
			}

			stats, restore := installHooks(logger, nil)
			defer restore()

			d := deps.Resolve(ctx, fetcher, deps.Requirement{Name: name}, deps.Options{Refresh: refresh})
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.Failed() {
				return d.Err
			}

			fmt.Fprintln(c.Out, d.String())

			s := stats.snapshot()
			source := string(d.Source)
			if s.CacheHits > 0 {
				source += " (" + iconCached + ")"
			}
			printKeyValue("Registry", e.Registry)
			printKeyValue("Package", StyleHighlight.Render(name))
			printKeyValue("Source", source)
			if d.Source == deps.SourcePlaceholder {
				printWarning("No license found")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the registry response cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached registry responses")

	return cmd
}
