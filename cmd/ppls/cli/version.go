package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/faucetdb/ppls/internal/ui"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

func newVersionCmd(a *app, version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   version,
				Commit:    commit,
				Built:     date,
				GoVersion: runtime.Version(),
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
			}

			r := a.renderer(cmd, "")
			switch r.Mode {
			case ui.ModeJSON:
				return r.JSON(info)
			case ui.ModePlain:
				fmt.Fprintln(r.Out, version)
				return nil
			}

			fmt.Fprintf(r.Out, "ppls %s\n", version)
			fmt.Fprintf(r.Out, "  commit:  %s\n", commit)
			fmt.Fprintf(r.Out, "  built:   %s\n", date)
			fmt.Fprintf(r.Out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(r.Out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
