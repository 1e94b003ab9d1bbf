// Command ddcgc reads one source argument (a literal expression string,
// or the contents of a path) and writes the generated Z80 listing to
// stdout or a file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/z80gen/ddcg/pkg/codegen"
	"github.com/z80gen/ddcg/pkg/sexpr"
	"github.com/z80gen/ddcg/pkg/version"
)

var (
	outputFile  string
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "ddcgc [source]",
	Short: "Destination-driven Z80 code generator " + version.GetVersion(),
	Long: `ddcgc compiles a small S-expression language to symbolic Z80 assembly
using a single-pass destination-driven code generator: every form is
generated against a data destination (where its value must end up) and a
control destination (what must happen next), so the generator selects
tight instruction sequences without a separate optimization pass.

SOURCE is either a literal expression/program string, or a path whose
contents are read and parsed as a sequence of top-level forms.

EXAMPLES:
  ddcgc '(int16 x) (sub main (set x 5))'
  ddcgc program.ddcg -o program.asm`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Println(version.GetVersion())
			return nil
		}
		if len(args) == 0 {
			return cmd.Help()
		}
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version")
}

func run(source string) error {
	src := source
	if contents, err := os.ReadFile(source); err == nil {
		src = string(contents)
	}

	forms, err := sexpr.ReadAll(src)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	backend := codegen.GetBackend("z80", &codegen.BackendOptions{})
	listing, err := backend.Generate(forms)
	if err != nil {
		return fmt.Errorf("codegen error: %w", err)
	}

	if outputFile == "" {
		_, err := fmt.Fprint(os.Stdout, listing)
		return err
	}
	return os.WriteFile(outputFile, []byte(listing), 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
