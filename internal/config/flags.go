package config

import "flag"

func ParseFlags(base Config) Config {
	depth := flag.Int("depth", base.TreeDepth,
		"Number of levels to show when browsing system library directories")
	size := flag.String("size", base.MinSize,
		"Minimum size for system library directories to be included (units: B, K, M, G)")
	browse := flag.Bool("browse", false,
		"Browse system library directories only (skip the main menu)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	base.TreeDepth = *depth
	base.MinSize = *size
	base.BrowseOnly = *browse
	base.Verbose = *verbose
	if args := flag.Args(); len(args) > 0 {
		base.MountPoint = args[0]
	}
	return base
}
