package client

import (
	"flag"
	log "github.com/treeforest/logger"
)

func parseCommand(f *flag.FlagSet, args []string) bool {
	if err := f.Parse(args); err != nil {
		log.Warnf("parse command %s failed: %v", f.Name(), err)
		return false
	}
	return f.Parsed()
}
