package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	var script string
	switch c.Shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

const bashCompletion = `# clw bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(clw completion bash)"

_clw_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="validate scan check-line versions remind schema config doctor version update completion"
    local global_flags="-f --format -q --quiet -v --verbose"

    case "${prev}" in
        clw)
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
            return
            ;;
        -f|--format)
            COMPREPLY=($(compgen -W "ndjson text" -- "${cur}"))
            return
            ;;
        remind)
            COMPREPLY=($(compgen -W "status snooze disable reset --no-prompt" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        validate)
            COMPREPLY=($(compgen -f -W "--strict --no-record ${global_flags}" -- "${cur}"))
            ;;
        scan)
            COMPREPLY=($(compgen -d -W "-r --reports ${global_flags}" -- "${cur}"))
            ;;
        check-line)
            COMPREPLY=($(compgen -W "-c --context --strict ${global_flags}" -- "${cur}"))
            ;;
        schema)
            COMPREPLY=($(compgen -W "-t --type ${global_flags}" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _clw_completions clw
`

const zshCompletion = `#compdef clw
# clw zsh completion script
# Add to ~/.zshrc:
#   eval "$(clw completion zsh)"

_clw() {
    local -a commands
    commands=(
        'validate:Validate Claude session log files'
        'scan:Scan the Claude projects directory'
        'check-line:Validate one JSON log entry read from stdin'
        'versions:List supported log schema versions'
        'remind:Show or manage the re-analysis reminder'
        'schema:Output JSON Schema for clw output types'
        'config:Show or manage configuration'
        'doctor:Check configuration and log directory'
        'version:Show version information'
        'update:Show how to upgrade clw'
        'completion:Generate shell completions'
    )

    local -a global_opts
    global_opts=(
        '-f[Output format]:format:(ndjson text)'
        '--format[Output format]:format:(ndjson text)'
        '-q[Suppress info output]'
        '--quiet[Suppress info output]'
        '-v[Show debug output]'
        '--verbose[Show debug output]'
    )

    _arguments -C \
        $global_opts \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                validate)
                    _arguments \
                        '--strict[Exit non-zero on invalid entries]' \
                        '--no-record[Do not count this run]' \
                        '*:log file:_files' \
                        $global_opts
                    ;;
                scan)
                    _arguments \
                        '-r[Print a report per file]' \
                        '--reports[Print a report per file]' \
                        '1:directory:_directories' \
                        $global_opts
                    ;;
                remind)
                    _arguments '1:action:(status snooze disable reset)'
                    ;;
                config)
                    _arguments '1:action:(show path generate)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

compdef _clw clw
`

const fishCompletion = `# clw fish completion script
# Add to ~/.config/fish/completions/clw.fish

# Disable file completion by default
complete -c clw -f

# Commands
complete -c clw -n "__fish_use_subcommand" -a "validate" -d "Validate Claude session log files"
complete -c clw -n "__fish_use_subcommand" -a "scan" -d "Scan the Claude projects directory"
complete -c clw -n "__fish_use_subcommand" -a "check-line" -d "Validate one JSON log entry read from stdin"
complete -c clw -n "__fish_use_subcommand" -a "versions" -d "List supported log schema versions"
complete -c clw -n "__fish_use_subcommand" -a "remind" -d "Show or manage the re-analysis reminder"
complete -c clw -n "__fish_use_subcommand" -a "schema" -d "Output JSON Schema for clw output types"
complete -c clw -n "__fish_use_subcommand" -a "config" -d "Show or manage configuration"
complete -c clw -n "__fish_use_subcommand" -a "doctor" -d "Check configuration and log directory"
complete -c clw -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c clw -n "__fish_use_subcommand" -a "update" -d "Show how to upgrade clw"
complete -c clw -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c clw -s f -l format -d "Output format" -xa "ndjson text"
complete -c clw -s q -l quiet -d "Suppress info output"
complete -c clw -s v -l verbose -d "Show debug output"

# Validate command
complete -c clw -n "__fish_seen_subcommand_from validate" -F
complete -c clw -n "__fish_seen_subcommand_from validate" -l strict -d "Exit non-zero on invalid entries"
complete -c clw -n "__fish_seen_subcommand_from validate" -l no-record -d "Do not count this run"

# Scan command
complete -c clw -n "__fish_seen_subcommand_from scan" -s r -l reports -d "Print a report per file"

# Check-line command
complete -c clw -n "__fish_seen_subcommand_from check-line" -s c -l context -d "Location to mention in the warning"
complete -c clw -n "__fish_seen_subcommand_from check-line" -l strict -d "Exit non-zero when invalid"

# Subcommands
complete -c clw -n "__fish_seen_subcommand_from remind" -a "status snooze disable reset"
complete -c clw -n "__fish_seen_subcommand_from config" -a "show path generate"
complete -c clw -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
