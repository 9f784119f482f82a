package cli

import (
	"fmt"
	"io"
	"strings"
)

// CompletionShells lists the shells GenerateCompletion supports.
var CompletionShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for shell to out. The
// backends are offered as values for -backend.
func GenerateCompletion(out io.Writer, shell string, backends []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, backends)
	case "zsh":
		return generateZshCompletion(out, backends)
	case "fish":
		return generateFishCompletion(out, backends)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(CompletionShells, ", "))
	}
}

func generateBashCompletion(out io.Writer, backends []string) error {
	script := `# Bash completion script for fib
# Add this to your ~/.bashrc or ~/.bash_completion

_fib_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="-h -version -timeout -workers -backend -max-n -max-range -output -o -quiet -q -hex -json -no-color -log-level -server -port -interactive -tui -completion"

    case "${prev}" in
        -backend)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;
        -completion)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;
        -log-level)
            COMPREPLY=( $(compgen -W "debug info warn error disabled" -- "${cur}") )
            return 0
            ;;
        -output|-o)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
        -timeout)
            COMPREPLY=( $(compgen -W "10s 1m 5m 30m" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "single range" -- "${cur}") )
    fi
}

complete -F _fib_completions fib
`
	_, err := fmt.Fprintf(out, script, strings.Join(backends, " "), strings.Join(CompletionShells, " "))
	return err
}

func generateZshCompletion(out io.Writer, backends []string) error {
	script := `#compdef fib

# Zsh completion script for fib
# Place this file in a directory listed in $fpath

_fib() {
    _arguments -s \
        '-h[Show help message]' \
        '-version[Show version information]' \
        '-timeout[Maximum execution time]:duration:(10s 1m 5m 30m)' \
        '-workers[Range parallelism degree]:workers:' \
        '-backend[Single-value backend]:backend:(%s)' \
        '-max-n[Largest accepted index]:n:' \
        '-max-range[Largest accepted range length]:length:' \
        '(-o -output)'{-o,-output}'[Output file path]:file:_files' \
        '(-q -quiet)'{-q,-quiet}'[Print bare values]' \
        '-hex[Render values in hexadecimal]' \
        '-json[Output as JSON]' \
        '-no-color[Disable colored output]' \
        '-log-level[Diagnostic log level]:level:(debug info warn error disabled)' \
        '-server[Start HTTP server mode]' \
        '-port[Server port]:port:' \
        '-interactive[Start interactive REPL]' \
        '-tui[Start terminal form]' \
        '-completion[Generate completion script]:shell:(%s)' \
        '1:command:(single range)' \
        '*:index:'
}

_fib "$@"
`
	_, err := fmt.Fprintf(out, script, strings.Join(backends, " "), strings.Join(CompletionShells, " "))
	return err
}

func generateFishCompletion(out io.Writer, backends []string) error {
	script := `# Fish completion script for fib
# Add this to ~/.config/fish/completions/fib.fish

complete -c fib -f
complete -c fib -n '__fish_use_subcommand' -a 'single' -d 'Compute F(n)'
complete -c fib -n '__fish_use_subcommand' -a 'range' -d 'Compute F(start)..F(end)'

complete -c fib -o h -d 'Show help message'
complete -c fib -o version -d 'Show version information'
complete -c fib -o timeout -d 'Maximum execution time' -xa '10s 1m 5m 30m'
complete -c fib -o workers -d 'Range parallelism degree' -x
complete -c fib -o backend -d 'Single-value backend' -xa '%s'
complete -c fib -o max-n -d 'Largest accepted index' -x
complete -c fib -o max-range -d 'Largest accepted range length' -x
complete -c fib -o o -o output -d 'Output file path' -rF
complete -c fib -o q -o quiet -d 'Print bare values'
complete -c fib -o hex -d 'Render values in hexadecimal'
complete -c fib -o json -d 'Output as JSON'
complete -c fib -o no-color -d 'Disable colored output'
complete -c fib -o log-level -d 'Diagnostic log level' -xa 'debug info warn error disabled'
complete -c fib -o server -d 'Start HTTP server mode'
complete -c fib -o port -d 'Server port' -x
complete -c fib -o interactive -d 'Start interactive REPL'
complete -c fib -o tui -d 'Start terminal form'
complete -c fib -o completion -d 'Generate completion script' -xa '%s'
`
	_, err := fmt.Fprintf(out, script, strings.Join(backends, " "), strings.Join(CompletionShells, " "))
	return err
}
