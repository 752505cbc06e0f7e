package inscritos

// DocumentKind names one of the files attached to a registration.
type DocumentKind string

const (
	DocComprobante  DocumentKind = "comprobante"
	DocCIFrente     DocumentKind = "ci_frente"
	DocCIReverso    DocumentKind = "ci_reverso"
	DocAutorizacion DocumentKind = "autorizacion"
)

var DocumentKinds = []DocumentKind{DocComprobante, DocCIFrente, DocCIReverso, DocAutorizacion}

// Document returns the storage reference for kind. known is false for an
// unrecognised kind; an empty ref means the document was not uploaded.
func (p Participant) Document(kind DocumentKind) (ref string, known bool) {
	switch kind {
	case DocComprobante:
		return p.ComprobanteURL, true
	case DocCIFrente:
		return p.CIFrenteURL, true
	case DocCIReverso:
		return p.CIReversoURL, true
	case DocAutorizacion:
		return p.AutorizacionURL, true
	}
	return "", false
}
