package document

// Type identifies a document template.
type Type string

const (
	TypeAffidavit   Type = "affidavit"
	TypeLetter      Type = "letter"
	TypeContract    Type = "contract"
	TypeCertificate Type = "certificate"
	TypeApplication Type = "application"
	TypeCustom      Type = "custom"

	// TypeGeneral is the free-form chat mode. It is never offered in the
	// document menu but its replies still ship as a PDF.
	TypeGeneral Type = "general"
)

var labels = map[Type]string{
	TypeAffidavit:   "Affidavit Document",
	TypeLetter:      "Formal Letter",
	TypeContract:    "Contract/Agreement",
	TypeCertificate: "Certificate",
	TypeApplication: "Application Form",
	TypeCustom:      "Custom Document",
}

// All lists the supported document types in menu order.
func All() []Type {
	return []Type{
		TypeAffidavit,
		TypeLetter,
		TypeContract,
		TypeCertificate,
		TypeApplication,
		TypeCustom,
	}
}

// Valid reports whether t names a supported document type.
func Valid(t Type) bool {
	_, ok := labels[t]
	return ok
}

// Label returns the human-readable title used in menus and PDF headers.
func (t Type) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	if t == TypeGeneral {
		return "AI Assistant Response"
	}
	return "Document"
}

// FileStem returns the artifact file name prefix for the type.
func (t Type) FileStem() string {
	if t == TypeGeneral {
		return "chat_response"
	}
	return string(t)
}

func (t Type) String() string { return string(t) }
