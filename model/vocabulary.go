package model

// VocabularyScope names the vocabulary category a URI belongs to. Each scope
// is stored in its own table.
type VocabularyScope string

const (
	ScopeBizStep            VocabularyScope = "BizStep"
	ScopeDisposition        VocabularyScope = "Disposition"
	ScopeReadPoint          VocabularyScope = "ReadPoint"
	ScopeBizLocation        VocabularyScope = "BizLocation"
	ScopeEPCClass           VocabularyScope = "EPCClass"
	ScopeBizTransaction     VocabularyScope = "BizTransaction"
	ScopeBizTransactionType VocabularyScope = "BizTransactionType"
)

var VocabularyScopes = []VocabularyScope{
	ScopeBizStep,
	ScopeDisposition,
	ScopeReadPoint,
	ScopeBizLocation,
	ScopeEPCClass,
	ScopeBizTransaction,
	ScopeBizTransactionType,
}

func ParseVocabularyScope(s string) (VocabularyScope, bool) {
	for _, scope := range VocabularyScopes {
		if string(scope) == s {
			return scope, true
		}
	}
	return "", false
}
