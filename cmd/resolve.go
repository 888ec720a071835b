package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cloudposse/whence/pkg/extends"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// resolveOptions contains parsed flags for the resolve command.
type resolveOptions struct {
	BasePath   string
	Path       string
	Format     string
	ExtendsKey string
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <document>",
	Short: "Resolve a document's extends chain and print the explained result",
	Long: `Resolve loads the given configuration document, walks its extends chain
(parents before children), merges every document by precedence, and prints the
resolved value together with the per-field decision ledger.`,
	Example: "whence resolve ./tsconfig.json --path compilerOptions.strict",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bind flags through Viper to preserve env precedence (WHENCE_* vars).
		v := viper.New()
		v.SetEnvPrefix("WHENCE")
		v.AutomaticEnv()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		opts := &resolveOptions{
			BasePath:   v.GetString("base-path"),
			Path:       v.GetString("path"),
			Format:     v.GetString("format"),
			ExtendsKey: v.GetString("extends-key"),
		}

		return runResolve(args[0], opts, cmd.OutOrStdout())
	},
}

func init() {
	resolveCmd.Flags().String("base-path", ".", "base directory for resolving the entry reference")
	resolveCmd.Flags().String("path", "", "print the explanations for one dotted field path instead of the full snapshot")
	resolveCmd.Flags().String("format", "json", "output format: json or yaml")
	resolveCmd.Flags().String("extends-key", extends.DefaultExtendsKey, "document field naming parent references")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(ref string, opts *resolveOptions, out io.Writer) error {
	resolver := extends.NewChainResolver()
	resolver.ExtendsKey = opts.ExtendsKey

	resolved, err := resolver.Resolve(ref, opts.BasePath)
	if err != nil {
		return err
	}

	var output any = resolved.Snapshot()
	if opts.Path != "" {
		output = resolved.Explain(opts.Path)
	}

	rendered, err := render(output, opts.Format)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, rendered)
	return err
}

func render(output any, format string) (string, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(output)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected json or yaml)", format)
	}
}
