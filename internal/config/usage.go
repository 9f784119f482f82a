package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/fibrange/internal/ui"
)

// setCustomUsage configures the flag set with a colored usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// NO_COLOR applies even before the theme is initialised.
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()
		name := fs.Name()

		fmt.Fprintf(out, "\n%sfib%s computes exact Fibonacci numbers of any size.\n\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "%sUsage:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s [flags] <n>\n", name)
		fmt.Fprintf(out, "  %s [flags] single <n>\n", name)
		fmt.Fprintf(out, "  %s [flags] range <start> <end>\n", name)
		fmt.Fprintf(out, "  %s -server | -interactive | -tui [flags]\n\n", name)
		fmt.Fprintf(out, "%sFlags:%s\n", t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			argName, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if len(argName) > 0 {
				flagSig += " " + argName
			}
			fmt.Fprintf(out, "  %s%-22s%s %s", t.Primary, flagSig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEvery flag can also be set with a %s-prefixed environment variable, e.g. %sTIMEOUT=30s.\n\n", EnvPrefix, EnvPrefix)
	}
}
