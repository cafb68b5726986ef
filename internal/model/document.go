package model

// Document is a stored document as returned by /api/documents/. Date fields
// are kept as the strings the service sent so output round-trips unchanged.
type Document struct {
	ID                  int                   `json:"id"`
	Title               string                `json:"title,omitempty"`
	Content             string                `json:"content,omitempty"`
	Correspondent       *int                  `json:"correspondent"`
	DocumentType        *int                  `json:"document_type"`
	StoragePath         *int                  `json:"storage_path"`
	Tags                []int                 `json:"tags"`
	Created             string                `json:"created"`
	CreatedDate         string                `json:"created_date,omitempty"`
	Modified            string                `json:"modified,omitempty"`
	Added               string                `json:"added"`
	DeletedAt           *string               `json:"deleted_at,omitempty"`
	ArchiveSerialNumber *int                  `json:"archive_serial_number,omitempty"`
	OriginalFileName    *string               `json:"original_file_name,omitempty"`
	ArchivedFileName    *string               `json:"archived_file_name,omitempty"`
	MimeType            string                `json:"mime_type,omitempty"`
	PageCount           *int                  `json:"page_count,omitempty"`
	Owner               *int                  `json:"owner,omitempty"`
	Permissions         *Permissions          `json:"permissions,omitempty"`
	UserCanChange       *bool                 `json:"user_can_change,omitempty"`
	IsSharedByRequester *bool                 `json:"is_shared_by_requester,omitempty"`
	Notes               []DocumentNote        `json:"notes,omitempty"`
	CustomFields        []CustomFieldInstance `json:"custom_fields,omitempty"`
}

// DocumentNote is a note attached to a document.
type DocumentNote struct {
	ID      int       `json:"id"`
	Note    string    `json:"note,omitempty"`
	Created string    `json:"created,omitempty"`
	User    *NoteUser `json:"user,omitempty"`
}

// NoteUser identifies the author of a note.
type NoteUser struct {
	ID        int    `json:"id,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// CustomFieldInstance is the value of one custom field on a document.
type CustomFieldInstance struct {
	Field int `json:"field"`
	Value any `json:"value"`
}

// DocumentUpdate is the PATCH body for a document. Nil fields are left
// untouched by the service.
type DocumentUpdate struct {
	Title               *string `json:"title,omitempty"`
	Content             *string `json:"content,omitempty"`
	Correspondent       *int    `json:"correspondent,omitempty"`
	DocumentType        *int    `json:"document_type,omitempty"`
	StoragePath         *int    `json:"storage_path,omitempty"`
	Created             *string `json:"created,omitempty"`
	ArchiveSerialNumber *int    `json:"archive_serial_number,omitempty"`
	Tags                []int   `json:"tags,omitempty"`
}

// DocumentUpload carries the optional metadata sent with an uploaded file.
type DocumentUpload struct {
	Title               *string
	Correspondent       *int
	DocumentType        *int
	StoragePath         *int
	Created             *string
	ArchiveSerialNumber *int
	Tags                []int
}

// DocumentPlain renders a document as "[id] title". Untitled documents
// produce no line.
func DocumentPlain(d Document) string {
	return bracketed(d.ID, d.Title, nil)
}
