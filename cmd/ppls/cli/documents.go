package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/faucetdb/ppls/internal/client"
	"github.com/faucetdb/ppls/internal/command"
	"github.com/faucetdb/ppls/internal/model"
	"github.com/faucetdb/ppls/internal/ui"
)

var documentColumns = []string{"id", "title", "created", "added", "correspondent", "document_type", "tags"}

func newDocumentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"document", "docs"},
		Short:   "Manage documents",
	}

	var tags []int
	listCmd := newListCmd(a, command.Documents, documentColumns, func() client.Params {
		return client.Params{{Key: "tags__id__all", Value: tags}}
	})
	listCmd.Flags().IntSliceVar(&tags, "tag", nil, "Only documents carrying all of these tag ids (repeatable)")

	cmd.AddCommand(newShowCmd(a, command.Documents))
	cmd.AddCommand(listCmd)
	cmd.AddCommand(newDocumentsAddCmd(a))
	cmd.AddCommand(newDocumentsUpdateCmd(a))
	cmd.AddCommand(newDeleteCmd(a, command.Documents))
	cmd.AddCommand(newDocumentsDownloadCmd(a))

	return cmd
}

// documentFlags are shared by add and update.
type documentFlags struct {
	title               string
	correspondent       int
	documentType        int
	storagePath         int
	created             string
	archiveSerialNumber int
	tags                []int
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Document title")
	cmd.Flags().IntVar(&f.correspondent, "correspondent", 0, "Correspondent id")
	cmd.Flags().IntVar(&f.documentType, "document-type", 0, "Document type id")
	cmd.Flags().IntVar(&f.storagePath, "storage-path", 0, "Storage path id")
	cmd.Flags().Var(newDateLikeValue(&f.created), "created", "Document created date")
	cmd.Flags().IntVar(&f.archiveSerialNumber, "archive-serial-number", 0, "Archive serial number")
	cmd.Flags().IntSliceVar(&f.tags, "tag", nil, "Tag id (repeatable)")
}

// ---------- documents add ----------

func newDocumentsAddCmd(a *app) *cobra.Command {
	var flags documentFlags

	cmd := &cobra.Command{
		Use:     "add <path>...",
		Aliases: []string{"upload"},
		Short:   "Upload one or more documents",
		Long: `Upload files to the consumption queue. Files are sent one at a time in the
order given; the first failure stops the remaining uploads. The metadata
flags apply to every file.`,
		Example: `  ppls documents add ./receipt.pdf --title "Receipt" --tag 3 --tag 7`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta := model.DocumentUpload{
				Title:               optional(cmd, "title", flags.title),
				Correspondent:       optional(cmd, "correspondent", flags.correspondent),
				DocumentType:        optional(cmd, "document-type", flags.documentType),
				StoragePath:         optional(cmd, "storage-path", flags.storagePath),
				Created:             optional(cmd, "created", flags.created),
				ArchiveSerialNumber: optional(cmd, "archive-serial-number", flags.archiveSerialNumber),
				Tags:                flags.tags,
			}
			return runDocumentsAdd(cmd, a, args, meta)
		},
	}

	flags.register(cmd)

	return cmd
}

func runDocumentsAdd(cmd *cobra.Command, a *app, paths []string, meta model.DocumentUpload) error {
	s, r, err := a.session(cmd)
	if err != nil {
		return err
	}

	progress := func(path string) {
		if len(paths) > 1 {
			r.Messagef("Uploading %s", path)
		}
	}
	results, err := command.Upload(cmd.Context(), s, a.fs, paths, meta, progress)
	if err != nil {
		return err
	}

	switch {
	case r.Mode == ui.ModeTable:
		for _, res := range results {
			if err := r.Record(res, ""); err != nil {
				return err
			}
		}
		return nil
	case r.Mode == ui.ModeJSON && len(results) == 1:
		return r.JSON(results[0])
	}
	return ui.List(r, results, nil, command.UploadPlain)
}

// ---------- documents update ----------

func newDocumentsUpdateCmd(a *app) *cobra.Command {
	var (
		flags   documentFlags
		content string
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a document",
		Example: `  ppls documents update 123 --title "Receipt"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload := model.DocumentUpdate{
				Title:               optional(cmd, "title", flags.title),
				Content:             optional(cmd, "content", content),
				Correspondent:       optional(cmd, "correspondent", flags.correspondent),
				DocumentType:        optional(cmd, "document-type", flags.documentType),
				StoragePath:         optional(cmd, "storage-path", flags.storagePath),
				Created:             optional(cmd, "created", flags.created),
				ArchiveSerialNumber: optional(cmd, "archive-serial-number", flags.archiveSerialNumber),
				Tags:                flags.tags,
			}
			return runUpdate(cmd, a, command.Documents, id, payload)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&content, "content", "", "Document content")

	return cmd
}

// ---------- documents download ----------

func newDocumentsDownloadCmd(a *app) *cobra.Command {
	var (
		original bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "download <id>...",
		Short: "Download documents",
		Long: `Download the archived PDF of each document, or the original upload with
--original. The file name comes from the server; --output may name a file
(single document only) or an existing directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return runDocumentsDownload(cmd, a, ids, command.DownloadOptions{Original: original, Output: output})
		},
	}

	cmd.Flags().BoolVar(&original, "original", false, "Download the original file instead of the archived version")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory")

	return cmd
}

func runDocumentsDownload(cmd *cobra.Command, a *app, ids []int, opts command.DownloadOptions) error {
	s, r, err := a.session(cmd)
	if err != nil {
		return err
	}

	dir, err := a.getwd()
	if err != nil {
		return err
	}
	opts.Dir = dir

	if len(ids) > 1 && opts.Output != "" {
		target := opts.Output
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		if ok, _ := afero.IsDir(a.fs, target); !ok {
			return fmt.Errorf("--output must be an existing directory when downloading %d documents", len(ids))
		}
	}

	results := make([]*command.DownloadResult, 0, len(ids))
	for _, id := range ids {
		res, err := command.Download(cmd.Context(), s, a.fs, id, opts)
		if err != nil {
			return err
		}
		r.Messagef("Saved %s", res.Output)
		results = append(results, res)
	}

	if r.Mode != ui.ModeJSON {
		return nil
	}
	if len(results) == 1 {
		return r.JSON(results[0])
	}
	return r.JSON(results)
}
