package model

// Correspondent is a sender or recipient of documents.
type Correspondent struct {
	Matchable
	LastCorrespondence *string `json:"last_correspondence,omitempty"`
}

// DocumentType classifies documents, e.g. "Invoice".
type DocumentType struct {
	Matchable
}

// CorrespondentPlain renders "[id] name (N documents)".
func CorrespondentPlain(c Correspondent) string {
	return bracketed(c.ID, c.Name, c.DocumentCount)
}

// DocumentTypePlain renders "[id] name (N documents)".
func DocumentTypePlain(d DocumentType) string {
	return bracketed(d.ID, d.Name, d.DocumentCount)
}
