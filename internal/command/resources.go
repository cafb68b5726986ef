package command

import "github.com/faucetdb/ppls/internal/model"

// Resources served by the document service.
var (
	Documents = Resource[model.Document, model.Document]{
		Name:       "document",
		Path:       DocumentsPath,
		NameFilter: "title__icontains",
		Plain:      model.DocumentPlain,
	}

	Tags = Resource[model.TagAPI, model.Tag]{
		Name:      "tag",
		Path:      "/api/tags/",
		Transform: model.TagAPI.Flatten,
		Plain:     model.TagPlain,
	}

	Correspondents = Identity("correspondent", "/api/correspondents/", model.CorrespondentPlain)

	DocumentTypes = Identity("document type", "/api/document_types/", model.DocumentTypePlain)

	CustomFields = Identity("custom field", "/api/custom_fields/", model.CustomFieldPlain)

	Profile = Resource[model.Profile, model.Profile]{
		Name:      "profile",
		Path:      "/api/profile/",
		Singleton: true,
		Transform: model.Profile.Sanitize,
		Plain:     model.ProfilePlain,
	}
)
