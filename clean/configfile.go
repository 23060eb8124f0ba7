package clean

import (
	"bufio"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jcorbin/gitcfg/internal/socutil"
)

// ParsePathspec splits raw into pathspec elements the way a shell would:
// whitespace-separated, with "quoted strings" kept as one element so a
// single element may itself contain spaces. It lets a caller accept a
// pathspec as one flag value or config field instead of requiring it be
// pre-split into argv elements.
func ParsePathspec(raw string) []string {
	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Split(socutil.ScanArgs)
	var out []string
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out
}

// fileOptions mirrors the subset of Options a config file can set,
// letting a repository pin its own clean defaults (which ignore patterns
// count as precious, whether to ever touch nested repositories) the same
// way a yaml-configured CLI loads its settings once at startup rather
// than threading every flag through by hand.
type fileOptions struct {
	Ignored                   *bool    `yaml:"ignored"`
	Precious                  *bool    `yaml:"precious"`
	Directories               *bool    `yaml:"directories"`
	Repositories              *bool    `yaml:"repositories"`
	SkipHiddenRepositories    *string  `yaml:"skip_hidden_repositories"`    // "none", "nonbare", or "all"
	FindUntrackedRepositories *string  `yaml:"find_untracked_repositories"` // "nonbare" or "all"
	IgnorePatterns            []string `yaml:"ignore_patterns"`
	PreciousPatterns          []string `yaml:"precious_patterns"`
}

// LoadOptionsFile reads YAML from path and applies it on top of base,
// returning the merged Options. A field absent from the file leaves
// base's value untouched.
func LoadOptionsFile(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}

	var fo fileOptions
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return base, err
	}

	opts := base
	if fo.Ignored != nil {
		opts.Ignored = *fo.Ignored
	}
	if fo.Precious != nil {
		opts.Precious = *fo.Precious
	}
	if fo.Directories != nil {
		opts.Directories = *fo.Directories
	}
	if fo.Repositories != nil {
		opts.Repositories = *fo.Repositories
	}
	if fo.SkipHiddenRepositories != nil {
		switch *fo.SkipHiddenRepositories {
		case "nonbare":
			opts.SkipHiddenRepositories = SkipHiddenNonBare
		case "all":
			opts.SkipHiddenRepositories = SkipHiddenAll
		default:
			opts.SkipHiddenRepositories = SkipHiddenNone
		}
	}
	if fo.FindUntrackedRepositories != nil {
		if *fo.FindUntrackedRepositories == "all" {
			opts.FindUntrackedRepositories = FindAllRepositories
		} else {
			opts.FindUntrackedRepositories = FindNonBareRepositories
		}
	}
	if fo.IgnorePatterns != nil {
		opts.IgnorePatterns = fo.IgnorePatterns
	}
	if fo.PreciousPatterns != nil {
		opts.PreciousPatterns = fo.PreciousPatterns
	}
	return opts, nil
}
