package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"tableflip.dev/daybridge/pkg/bridge"
	"tableflip.dev/daybridge/pkg/caldav"
	"tableflip.dev/daybridge/pkg/commands/options"
	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/notes"
	"tableflip.dev/daybridge/pkg/settings"
	"tableflip.dev/daybridge/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "daybridge",
		Short: options.Wrap80("Calendar and reminder bridge for your notes."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdapterCommands(topLevel)
	addAgenda(topLevel)
	addUI(topLevel)
	addPick(topLevel)
	addNote(topLevel)
	addRemind(topLevel)
	addCalendars(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadStore resolves the backend the adapter verbs talk to.
func loadStore() (eventkit.Store, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Backend() == store.BackendCalDAV {
		c := cfg.CalDAV()
		return caldav.New(caldav.Options{
			URL:      c.URL,
			Username: c.Username,
			Password: c.Password,
		}), nil
	}
	return store.Load(cfg)
}

// clientSetup loads the client settings and builds the bridge and the note
// manager the client commands share.
func clientSetup() (settings.Settings, *bridge.Bridge, *notes.Manager, error) {
	s, err := settings.Load(settings.DefaultPath())
	if err != nil {
		return s, nil, nil, err
	}
	b := bridge.New(bridge.Resolve(s.BridgePath))
	m := &notes.Manager{
		Root:           s.VaultPath,
		DateFormat:     s.DateFormat,
		FolderTemplate: s.NoteFolderPath,
		TemplatePath:   templatePath(s),
	}
	return s, b, m, nil
}

func templatePath(s settings.Settings) string {
	if s.TemplateFilePath == "" {
		return ""
	}
	if filepath.IsAbs(s.TemplateFilePath) || s.VaultPath == "" {
		return s.TemplateFilePath
	}
	return filepath.Join(s.VaultPath, s.TemplateFilePath)
}
