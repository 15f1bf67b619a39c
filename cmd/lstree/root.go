package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/lstree/internal/colorscale"
)

// listFlags holds every command-line option. A fresh value backs each
// command, so tests can build as many commands as they like.
type listFlags struct {
	// Layout
	long     bool
	tree     bool
	recurse  bool
	level    int
	header   bool
	extended bool
	classify bool

	// Filtering
	all         int
	onlyDirs    bool
	ignoreGlob  string
	dereference bool

	// Columns
	inode            bool
	links            bool
	blocksize        bool
	group            bool
	octal            bool
	context          bool
	noPermissions    bool
	noFilesize       bool
	noUser           bool
	noTime           bool
	modified         bool
	accessed         bool
	created          bool
	changed          bool
	timeField        string
	git              bool
	gitRepos         bool
	gitReposNoStatus bool

	// Formatting
	timeStyle       string
	bytes           bool
	binary          bool
	colorScale      string
	colorScaleMode  string
	colorScaleCurve string
	minLuminance    int
	color           string
	theme           string
	json            bool

	// Sorting
	sort      string
	reverse   bool
	dirsFirst bool
	dirsLast  bool

	workers int
	debug   bool
	logFile string
}

func newRootCmd() *cobra.Command {
	f := &listFlags{}
	cmd := &cobra.Command{
		Use:   "lstree [flags] [path...]",
		Short: "List directory contents as a table or a tree",
		Long: `lstree lists files with optional metadata columns, recursing into
directories either section by section or as a single tree.

Example:
  lstree -l
  lstree -lT --level 2 src
  lstree -l --git --color-scale=age --color-scale-mode gradient`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f, args)
		},
	}

	fl := cmd.Flags()
	fl.SortFlags = false
	// -h is --header; cobra only adds its own help flag when none exists.
	fl.Bool("help", false, "Help for lstree")

	fl.BoolVarP(&f.long, "long", "l", false, "Show metadata columns")
	fl.BoolVarP(&f.tree, "tree", "T", false, "Recurse into directories as a tree")
	fl.BoolVarP(&f.recurse, "recurse", "R", false, "Recurse into directories, one section each")
	fl.IntVarP(&f.level, "level", "L", 0, "Limit the depth of recursion")
	fl.BoolVarP(&f.header, "header", "h", false, "Add a header row to each column")
	fl.BoolVarP(&f.extended, "extended", "@", false, "List each file's extended attributes")
	fl.BoolVarP(&f.classify, "classify", "F", false, "Append a type indicator to file names")

	fl.CountVarP(&f.all, "all", "a", "Show hidden files (twice to also show . and ..)")
	fl.BoolVarP(&f.onlyDirs, "only-dirs", "D", false, "List only directories")
	fl.StringVarP(&f.ignoreGlob, "ignore-glob", "I", "", "Pipe-separated globs of names to ignore")
	fl.BoolVarP(&f.dereference, "dereference", "X", false, "Follow symbolic links when recursing")

	fl.BoolVarP(&f.inode, "inode", "i", false, "Show each file's inode number")
	fl.BoolVarP(&f.links, "links", "H", false, "Show each file's hard link count")
	fl.BoolVarP(&f.blocksize, "blocksize", "S", false, "Show the space each file occupies")
	fl.BoolVarP(&f.group, "group", "g", false, "Show each file's group")
	fl.BoolVarP(&f.octal, "octal-permissions", "o", false, "Show permissions in octal")
	fl.BoolVarP(&f.context, "context", "Z", false, "Show each file's security context")
	fl.BoolVar(&f.noPermissions, "no-permissions", false, "Hide the permissions column")
	fl.BoolVar(&f.noFilesize, "no-filesize", false, "Hide the size column")
	fl.BoolVar(&f.noUser, "no-user", false, "Hide the user column")
	fl.BoolVar(&f.noTime, "no-time", false, "Hide every timestamp column")
	fl.BoolVarP(&f.modified, "modified", "m", false, "Show the modification time")
	fl.BoolVarP(&f.accessed, "accessed", "u", false, "Show the access time")
	fl.BoolVarP(&f.created, "created", "U", false, "Show the creation time")
	fl.BoolVar(&f.changed, "changed", false, "Show the status change time")
	fl.StringVarP(&f.timeField, "time", "t", "", "Timestamp to show (modified, accessed, created, changed)")
	fl.BoolVar(&f.git, "git", false, "Show each file's git status")
	fl.BoolVar(&f.gitRepos, "git-repos", false, "Show the git state of directories that are repositories")
	fl.BoolVar(&f.gitReposNoStatus, "git-repos-no-status", false, "Show the branch of directories that are repositories")

	fl.StringVar(&f.timeStyle, "time-style", "default", "Timestamp format (default, iso, long-iso, full-iso, relative)")
	fl.BoolVarP(&f.bytes, "bytes", "B", false, "Show sizes in bytes")
	fl.BoolVarP(&f.binary, "binary", "b", false, "Show sizes with binary prefixes")
	fl.StringVar(&f.colorScale, "color-scale", "", "Shade columns by value (all, age, size)")
	fl.Lookup("color-scale").NoOptDefVal = "all"
	fl.StringVar(&f.colorScaleMode, "color-scale-mode", "gradient", "Color scale mode (fixed, gradient)")
	fl.StringVar(&f.colorScaleCurve, "color-scale-curve", "linear", "Color scale curve (linear, decay)")
	fl.IntVar(&f.minLuminance, "min-luminance", colorscale.DefaultMinLuminance, "Lightness floor of the color scale, in percent")
	fl.StringVar(&f.color, "color", "auto", "When to use colors (auto, always, never)")
	fl.StringVar(&f.theme, "theme", "", "Theme file (default $XDG_CONFIG_HOME/lstree/theme.yaml)")
	fl.BoolVar(&f.json, "json", false, "Output in JSON format")

	fl.StringVarP(&f.sort, "sort", "s", "name", "Sort field")
	fl.BoolVarP(&f.reverse, "reverse", "r", false, "Reverse the sort order")
	fl.BoolVar(&f.dirsFirst, "group-directories-first", false, "List directories before other files")
	fl.BoolVar(&f.dirsLast, "group-directories-last", false, "List directories after other files")

	fl.IntVarP(&f.workers, "workers", "j", 0, "Goroutines rendering each directory (0 picks from the CPU count)")

	cmd.PersistentFlags().BoolVar(&f.debug, "debug", false, "Log debug records to stderr")
	cmd.PersistentFlags().StringVar(&f.logFile, "log-file", "", "Append JSON log records to this file")

	return cmd
}
