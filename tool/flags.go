package tool

import "flag"

// Config holds runtime overrides and mode selection from CLI flags.
type Config struct {
	Log           string
	UseConfigPath string
	UsePort       int
	UseUploadDir  string

	Code     string
	Text     string
	File     string // comma-separated paths to serve
	Receive  bool   // run as upload receiver
	Send     string // comma-separated paths to push to a remote receiver
	Fetch    bool   // pull text/file from a remote sender
	Compress bool   // force zip even for a single file
	OutDir   string // destination folder for -fetch
}

// SetFlags parses CLI flags and returns the override config.
func SetFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.IntVar(&cfg.UsePort, "usePort", 0, "override server port (default 80)")
	flag.StringVar(&cfg.UseUploadDir, "useUploadDir", "", "override upload folder for received files")
	flag.StringVar(&cfg.Code, "code", "", "identifying code for the airshare service")
	flag.StringVar(&cfg.Text, "text", "", "serve this text")
	flag.StringVar(&cfg.File, "file", "", "serve these file(s)/director(ies), comma separated")
	flag.BoolVar(&cfg.Receive, "receive", false, "serve as an upload receiver")
	flag.StringVar(&cfg.Send, "send", "", "push these file(s) to a remote upload receiver, comma separated")
	flag.BoolVar(&cfg.Fetch, "fetch", false, "fetch text or file from a remote sender")
	flag.BoolVar(&cfg.Compress, "zip", false, "force zip compression even for a single file")
	flag.StringVar(&cfg.OutDir, "out", ".", "destination folder for -fetch")
	flag.Parse()
	return cfg
}
