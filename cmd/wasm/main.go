//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/kittclouds/lexkitt/internal/cache"
	"github.com/kittclouds/lexkitt/internal/store"
	"github.com/kittclouds/lexkitt/pkg/citescan"
	"github.com/kittclouds/lexkitt/pkg/corpus"
	"github.com/kittclouds/lexkitt/pkg/drafting"
	"github.com/kittclouds/lexkitt/pkg/session"
	"github.com/kittclouds/lexkitt/pkg/signing"
)

// Version info
const Version = "0.3.0" // Corpus Index + Citation Scanner + Signing

// Global state
var opener store.Opener              // One-shot store initialization
var sqlStore *store.SQLiteStore      // SQLite persistent store
var appCache *cache.Cache            // Flat profile/document cache
var corpusSvc *corpus.Service        // Corpus Index operations
var citeDict *citescan.Dictionary    // Aho-Corasick citation dictionary
var sessionMgr *session.Manager      // Session + notification state
var draftSvc *drafting.Service       // LLM drafting service
var signSvc *signing.Service         // Ed25519 document signing
var sessionCallback js.Value         // JS callback invoked on session change

func main() {
	fmt.Println("[LexKitt] WASM Ready v" + Version)

	profileBindings := bindCollection(func() *cache.Collection[cache.ProfileRecord] { return appCache.Profiles })
	creditorBindings := bindCollection(func() *cache.Collection[cache.CreditorRecord] { return appCache.Creditors })
	documentBindings := bindCollection(func() *cache.Collection[cache.VaultDocumentRecord] { return appCache.Documents })
	processBindings := bindCollection(func() *cache.Collection[cache.RemedyProcessRecord] { return appCache.Processes })
	invoiceBindings := bindCollection(func() *cache.Collection[cache.InvoiceRecord] { return appCache.Invoices })
	templateBindings := bindCollection(func() *cache.Collection[cache.TemplateRecord] { return appCache.Templates })
	scriptBindings := bindCollection(func() *cache.Collection[cache.ScriptRecord] { return appCache.Scripts })

	// Register exports
	js.Global().Set("LexKitt", js.ValueOf(map[string]interface{}{
		"version":    js.FuncOf(getVersion),
		"initialize": js.FuncOf(initialize),
		// Corpus Index API
		"corpusIngest": js.FuncOf(corpusIngest),
		"corpusGet":    js.FuncOf(corpusGet),
		"corpusQuery":  js.FuncOf(corpusQuery),
		"corpusAll":    js.FuncOf(corpusAll),
		"corpusSearch": js.FuncOf(corpusSearch),
		"corpusCount":  js.FuncOf(corpusCount),
		"corpusClear":  js.FuncOf(corpusClear),
		// Citation Scanner API
		"citeRebuild": js.FuncOf(citeRebuild),
		"citeScan":    js.FuncOf(citeScan),
		"citeCitedIn": js.FuncOf(citeCitedIn),
		// Store Export/Import (OPFS sync)
		"storeExport": js.FuncOf(storeExport),
		"storeImport": js.FuncOf(storeImport),
		// Cache collections
		"profilesList":    js.FuncOf(profileBindings.list),
		"profileUpsert":   js.FuncOf(profileBindings.upsert),
		"profileRemove":   js.FuncOf(profileBindings.remove),
		"creditorsList":   js.FuncOf(creditorBindings.list),
		"creditorUpsert":  js.FuncOf(creditorBindings.upsert),
		"creditorRemove":  js.FuncOf(creditorBindings.remove),
		"documentsList":   js.FuncOf(documentBindings.list),
		"documentUpsert":  js.FuncOf(documentBindings.upsert),
		"documentRemove":  js.FuncOf(documentBindings.remove),
		"processesList":   js.FuncOf(processBindings.list),
		"processUpsert":   js.FuncOf(processBindings.upsert),
		"processRemove":   js.FuncOf(processBindings.remove),
		"invoicesList":    js.FuncOf(invoiceBindings.list),
		"invoiceUpsert":   js.FuncOf(invoiceBindings.upsert),
		"invoiceRemove":   js.FuncOf(invoiceBindings.remove),
		"templatesList":   js.FuncOf(templateBindings.list),
		"templateUpsert":  js.FuncOf(templateBindings.upsert),
		"templateRemove":  js.FuncOf(templateBindings.remove),
		"scriptsList":     js.FuncOf(scriptBindings.list),
		"scriptUpsert":    js.FuncOf(scriptBindings.upsert),
		"scriptRemove":    js.FuncOf(scriptBindings.remove),
		// Session API
		"sessionLogin":      js.FuncOf(sessionLogin),
		"sessionLogout":     js.FuncOf(sessionLogout),
		"sessionUser":       js.FuncOf(sessionUser),
		"sessionSetTab":     js.FuncOf(sessionSetTab),
		"sessionTab":        js.FuncOf(sessionTab),
		"sessionSetDraft":   js.FuncOf(sessionSetDraft),
		"sessionDraft":      js.FuncOf(sessionDraft),
		"sessionSubscribe":  js.FuncOf(sessionSubscribe),
		"notify":            js.FuncOf(notify),
		"notifyDismiss":     js.FuncOf(notifyDismiss),
		"notificationsList": js.FuncOf(notificationsList),
		// Drafting API
		"draftInit":       js.FuncOf(jsDraftInit),
		"draftLetter":     js.FuncOf(jsDraftLetter),
		"analyzeDocument": js.FuncOf(jsAnalyzeDocument),
		// Signing API
		"signGenerateKeys": js.FuncOf(signGenerateKeys),
		"signEnsureKeys":   js.FuncOf(signEnsureKeys),
		"signPublicKey":    js.FuncOf(signPublicKey),
		"signData":         js.FuncOf(signData),
		"signVerify":       js.FuncOf(signVerify),
		"signHash":         js.FuncOf(signHash),
		"signClearKeys":    js.FuncOf(signClearKeys),
	}))

	select {}
}

// getVersion returns the module version
func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initialize opens the store and cache and wires every service.
// Args: [storeDSN string (optional), cacheDSN string (optional)]
// Repeated calls reuse the already-open store.
func initialize(this js.Value, args []js.Value) interface{} {
	storeDSN := ":memory:"
	cacheDSN := ":memory:"
	if len(args) > 0 && args[0].String() != "" && args[0].String() != "null" {
		storeDSN = args[0].String()
	}
	if len(args) > 1 && args[1].String() != "" && args[1].String() != "null" {
		cacheDSN = args[1].String()
	}

	var err error
	sqlStore, err = opener.Open(storeDSN)
	if err != nil {
		return errorResult("failed to open store: " + err.Error())
	}

	if appCache == nil {
		appCache, err = cache.New(cacheDSN)
		if err != nil {
			return errorResult("failed to open cache: " + err.Error())
		}
	}

	corpusSvc = corpus.NewService(sqlStore)
	signSvc = signing.NewService(sqlStore)
	sessionMgr = session.NewManager(appCache, session.WithOnChange(func() {
		if !sessionCallback.IsUndefined() && !sessionCallback.IsNull() {
			sessionCallback.Invoke()
		}
	}))

	fmt.Println("[LexKitt] Store + cache initialized")
	return successResult("initialized")
}

// =============================================================================
// Corpus Index API
// =============================================================================

// corpusIngest validates and upserts a batch of corpus items.
// Args: [itemsJSON string]
// Returns: IngestReport JSON (upserted count + per-item rejections)
func corpusIngest(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("corpusIngest requires 1 arg: itemsJSON")
	}
	if corpusSvc == nil {
		return errorResult("not initialized")
	}

	var items []store.CorpusItem
	if err := json.Unmarshal([]byte(args[0].String()), &items); err != nil {
		return errorResult("invalid items json: " + err.Error())
	}

	report, err := corpusSvc.Ingest(items)
	if err != nil {
		return errorResult("ingest failed: " + err.Error())
	}

	bytes, _ := json.Marshal(report)
	return string(bytes)
}

// corpusGet retrieves an item by citation.
// Args: [citation string]
// Returns: CorpusItem JSON or null
func corpusGet(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("corpusGet requires 1 arg: citation")
	}
	if corpusSvc == nil {
		return errorResult("not initialized")
	}

	item, err := corpusSvc.Lookup(args[0].String())
	if err != nil {
		return errorResult("get failed: " + err.Error())
	}
	if item == nil {
		return "null"
	}

	bytes, _ := json.Marshal(item)
	return string(bytes)
}

// corpusQuery runs an exact-match query against a named index.
// Args: [index string, value string]
// Returns: JSON array of items
func corpusQuery(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("corpusQuery requires 2 args: index, value")
	}
	if corpusSvc == nil {
		return errorResult("not initialized")
	}

	items, err := corpusSvc.QueryByIndex(store.CorpusIndex(args[0].String()), args[1].String())
	if err != nil {
		return errorResult("query failed: " + err.Error())
	}

	bytes, _ := json.Marshal(items)
	return string(bytes)
}

// corpusAll returns every item, optionally filtered by source.
// Args: [source string (optional)]
func corpusAll(this js.Value, args []js.Value) interface{} {
	if corpusSvc == nil {
		return errorResult("not initialized")
	}

	var source store.Source
	if len(args) > 0 && args[0].String() != "" && args[0].String() != "null" {
		source = store.Source(args[0].String())
	}

	items, err := corpusSvc.All(source)
	if err != nil {
		return errorResult("list failed: " + err.Error())
	}

	bytes, _ := json.Marshal(items)
	return string(bytes)
}

// corpusSearch runs ranked keyword search over the corpus.
// Args: [query string, source string (optional)]
// Returns: JSON array of {item, score}
func corpusSearch(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("corpusSearch requires 1+ args: query, [source]")
	}
	if corpusSvc == nil {
		return errorResult("not initialized")
	}

	var source store.Source
	if len(args) > 1 && args[1].String() != "" && args[1].String() != "null" {
		source = store.Source(args[1].String())
	}

	results, err := corpusSvc.Search(args[0].String(), source)
	if err != nil {
		return errorResult("search failed: " + err.Error())
	}

	bytes, _ := json.Marshal(results)
	return string(bytes)
}

// corpusCount returns the number of corpus items.
func corpusCount(this js.Value, args []js.Value) interface{} {
	if corpusSvc == nil {
		return errorResult("not initialized")
	}

	n, err := corpusSvc.Count()
	if err != nil {
		return errorResult("count failed: " + err.Error())
	}
	return n
}

// corpusClear removes every corpus item. Key slots are untouched.
func corpusClear(this js.Value, args []js.Value) interface{} {
	if sqlStore == nil {
		return errorResult("not initialized")
	}

	if err := sqlStore.ClearCorpus(); err != nil {
		return errorResult("clear failed: " + err.Error())
	}
	citeDict = nil
	return successResult("cleared")
}

// =============================================================================
// Citation Scanner API
// =============================================================================

// citeRebuild recompiles the citation dictionary from the current corpus.
// Call after ingest or clear.
func citeRebuild(this js.Value, args []js.Value) interface{} {
	if corpusSvc == nil {
		return errorResult("not initialized")
	}

	items, err := corpusSvc.All("")
	if err != nil {
		return errorResult("load failed: " + err.Error())
	}
	if len(items) == 0 {
		citeDict = nil
		fmt.Println("[LexKitt] Citation dictionary cleared (empty corpus)")
		return successResult("cleared")
	}

	dict, err := citescan.Compile(items)
	if err != nil {
		return errorResult("compile failed: " + err.Error())
	}
	citeDict = dict
	fmt.Printf("[LexKitt] Citation dictionary compiled: %d items\n", len(items))

	return successResult(fmt.Sprintf("compiled from %d items", len(items)))
}

// citeScan finds corpus citations in free text.
// Args: [text string]
// Returns: JSON array of matches with offsets into the original text
func citeScan(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "[]"
	}
	if citeDict == nil {
		return "[]"
	}

	matches := citeDict.Scan(args[0].String())
	spans := make([]map[string]interface{}, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, map[string]interface{}{
			"from":      m.Start,
			"to":        m.End,
			"text":      m.MatchedText,
			"citations": m.Citations,
		})
	}
	bytes, _ := json.Marshal(spans)
	return string(bytes)
}

// citeCitedIn returns the deduplicated citations referenced by a text.
// Args: [text string]
func citeCitedIn(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "[]"
	}
	if citeDict == nil {
		return "[]"
	}

	citations := citeDict.CitedIn(args[0].String())
	bytes, _ := json.Marshal(citations)
	return string(bytes)
}

// =============================================================================
// Store Export/Import (OPFS Sync)
// =============================================================================

// storeExport serializes the store to a Uint8Array for OPFS persistence.
func storeExport(this js.Value, args []js.Value) interface{} {
	if sqlStore == nil {
		return errorResult("not initialized")
	}

	data, err := sqlStore.Export()
	if err != nil {
		return errorResult("export failed: " + err.Error())
	}

	jsArray := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(jsArray, data)

	fmt.Printf("[LexKitt] Exported %d bytes\n", len(data))
	return jsArray
}

// storeImport restores the store from a Uint8Array.
// Args: [data Uint8Array]
func storeImport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("storeImport requires 1 arg: data (Uint8Array)")
	}
	if sqlStore == nil {
		return errorResult("not initialized")
	}

	jsArray := args[0]
	length := jsArray.Get("length").Int()
	data := make([]byte, length)
	js.CopyBytesToGo(data, jsArray)

	if err := sqlStore.Import(data); err != nil {
		return errorResult("import failed: " + err.Error())
	}

	// Imported corpus invalidates the compiled dictionary
	citeDict = nil

	fmt.Printf("[LexKitt] Imported %d bytes\n", length)
	return successResult(fmt.Sprintf("imported %d bytes", length))
}

// =============================================================================
// Cache collection bindings
// =============================================================================

type collectionFuncs struct {
	list   func(js.Value, []js.Value) interface{}
	upsert func(js.Value, []js.Value) interface{}
	remove func(js.Value, []js.Value) interface{}
}

// bindCollection builds the list/upsert/remove handlers for one cache
// collection. The getter is evaluated per call so handlers registered before
// initialize still see the live cache.
func bindCollection[T cache.Record](get func() *cache.Collection[T]) collectionFuncs {
	return collectionFuncs{
		list: func(this js.Value, args []js.Value) interface{} {
			if appCache == nil {
				return errorResult("not initialized")
			}
			bytes, _ := json.Marshal(get().List())
			return string(bytes)
		},
		upsert: func(this js.Value, args []js.Value) interface{} {
			if len(args) < 1 {
				return errorResult("upsert requires 1 arg: recordJSON")
			}
			if appCache == nil {
				return errorResult("not initialized")
			}

			var record T
			if err := json.Unmarshal([]byte(args[0].String()), &record); err != nil {
				return errorResult("invalid record json: " + err.Error())
			}
			if err := get().Upsert(record); err != nil {
				return errorResult("upsert failed: " + err.Error())
			}
			return successResult("upserted " + record.RecordID())
		},
		remove: func(this js.Value, args []js.Value) interface{} {
			if len(args) < 1 {
				return errorResult("remove requires 1 arg: id")
			}
			if appCache == nil {
				return errorResult("not initialized")
			}

			if err := get().Remove(args[0].String()); err != nil {
				return errorResult("remove failed: " + err.Error())
			}
			return successResult("removed")
		},
	}
}

// =============================================================================
// Session API
// =============================================================================

// sessionLogin persists the current user.
// Args: [userJSON string]
func sessionLogin(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("sessionLogin requires 1 arg: userJSON")
	}
	if sessionMgr == nil {
		return errorResult("not initialized")
	}

	var user cache.UserRecord
	if err := json.Unmarshal([]byte(args[0].String()), &user); err != nil {
		return errorResult("invalid user json: " + err.Error())
	}

	if err := sessionMgr.Login(&user); err != nil {
		return errorResult("login failed: " + err.Error())
	}
	return successResult("logged in")
}

// sessionLogout clears the current user and resets the active tab.
func sessionLogout(this js.Value, args []js.Value) interface{} {
	if sessionMgr == nil {
		return errorResult("not initialized")
	}
	if err := sessionMgr.Logout(); err != nil {
		return errorResult("logout failed: " + err.Error())
	}
	return successResult("logged out")
}

// sessionUser returns the current user JSON or null.
func sessionUser(this js.Value, args []js.Value) interface{} {
	if sessionMgr == nil {
		return "null"
	}
	user := sessionMgr.CurrentUser()
	if user == nil {
		return "null"
	}
	bytes, _ := json.Marshal(user)
	return string(bytes)
}

// sessionSetTab switches the active tab. Unknown tab names are ignored.
// Args: [tab string]
func sessionSetTab(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("sessionSetTab requires 1 arg: tab")
	}
	if sessionMgr == nil {
		return errorResult("not initialized")
	}
	sessionMgr.SetActiveTab(session.Tab(args[0].String()))
	return successResult(string(sessionMgr.ActiveTab()))
}

// sessionTab returns the active tab name.
func sessionTab(this js.Value, args []js.Value) interface{} {
	if sessionMgr == nil {
		return string(session.DefaultTab)
	}
	return string(sessionMgr.ActiveTab())
}

// sessionSetDraft stores the draft handoff payload. Empty string clears it.
// Args: [payloadJSON string]
func sessionSetDraft(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("sessionSetDraft requires 1 arg: payloadJSON")
	}
	if sessionMgr == nil {
		return errorResult("not initialized")
	}

	payload := args[0].String()
	if payload == "" || payload == "null" {
		sessionMgr.SetDraftHandoff(nil)
	} else {
		sessionMgr.SetDraftHandoff(json.RawMessage(payload))
	}
	return successResult("draft set")
}

// sessionDraft returns the draft handoff payload or null.
func sessionDraft(this js.Value, args []js.Value) interface{} {
	if sessionMgr == nil {
		return "null"
	}
	payload := sessionMgr.DraftHandoff()
	if payload == nil {
		return "null"
	}
	return string(payload)
}

// sessionSubscribe registers a JS callback invoked after every session change.
// Args: [callback function]
func sessionSubscribe(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("sessionSubscribe requires 1 arg: callback")
	}
	sessionCallback = args[0]
	return successResult("subscribed")
}

// notify raises a toast notification.
// Args: [type string, message string]
// Returns: notification id
func notify(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("notify requires 2 args: type, message")
	}
	if sessionMgr == nil {
		return errorResult("not initialized")
	}
	return sessionMgr.Notify(session.NotificationType(args[0].String()), args[1].String())
}

// notifyDismiss removes a notification before its TTL expires.
// Args: [id string]
func notifyDismiss(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("notifyDismiss requires 1 arg: id")
	}
	if sessionMgr == nil {
		return errorResult("not initialized")
	}
	sessionMgr.Dismiss(args[0].String())
	return successResult("dismissed")
}

// notificationsList returns the live notifications, oldest first.
func notificationsList(this js.Value, args []js.Value) interface{} {
	if sessionMgr == nil {
		return "[]"
	}
	bytes, _ := json.Marshal(sessionMgr.Notifications())
	return string(bytes)
}

// =============================================================================
// Drafting WASM Bridge
// =============================================================================

// makePromise creates a JS Promise and returns it along with resolve/reject functions.
func makePromise() (promise js.Value, resolve js.Value, reject js.Value) {
	var resolveFn, rejectFn js.Value
	handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolveFn = args[0]
		rejectFn = args[1]
		return nil
	})
	defer handler.Release()

	promise = js.Global().Get("Promise").New(handler)
	return promise, resolveFn, rejectFn
}

// jsDraftInit initializes the drafting service with provider config.
// Args: [configJSON string]
func jsDraftInit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("draftInit: config JSON required")
	}

	var config drafting.Config
	if err := json.Unmarshal([]byte(args[0].String()), &config); err != nil {
		return errorResult(fmt.Sprintf("draftInit: invalid config: %v", err))
	}

	if draftSvc == nil {
		draftSvc = drafting.NewService(config)
	} else {
		draftSvc.UpdateConfig(config)
	}

	result, _ := json.Marshal(map[string]interface{}{
		"success":    true,
		"provider":   string(config.Provider),
		"model":      draftSvc.GetCurrentModel(),
		"configured": draftSvc.IsConfigured(),
	})
	return string(result)
}

// jsDraftLetter fills a letter template from case context via the LLM.
// Args: [templateBody string, caseContext string]
// Returns: Promise<string> with the drafted letter
func jsDraftLetter(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("draftLetter requires 2 args: templateBody, caseContext")
	}

	templateBody := args[0].String()
	caseContext := args[1].String()

	promise, resolve, reject := makePromise()

	go func() {
		if draftSvc == nil {
			reject.Invoke(js.Global().Get("Error").New("draftLetter: service not initialized (call draftInit first)"))
			return
		}

		letter, err := draftSvc.DraftLetter(context.Background(), templateBody, caseContext)
		if err != nil {
			reject.Invoke(js.Global().Get("Error").New(fmt.Sprintf("draftLetter: %v", err)))
			return
		}
		resolve.Invoke(letter)
	}()

	return promise
}

// jsAnalyzeDocument sends an uploaded file for metadata extraction.
// Args: [base64 string, mimeType string]
// Returns: Promise<JSON> with {docType, summary, keyDates, riskFlags}
func jsAnalyzeDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("analyzeDocument requires 2 args: base64, mimeType")
	}

	att := drafting.Attachment{
		Base64: args[0].String(),
		Mime:   args[1].String(),
	}

	promise, resolve, reject := makePromise()

	go func() {
		if draftSvc == nil {
			reject.Invoke(js.Global().Get("Error").New("analyzeDocument: service not initialized (call draftInit first)"))
			return
		}

		analysis, err := draftSvc.AnalyzeDocument(context.Background(), att)
		if err != nil {
			reject.Invoke(js.Global().Get("Error").New(fmt.Sprintf("analyzeDocument: %v", err)))
			return
		}

		jsonBytes, _ := json.Marshal(analysis)
		resolve.Invoke(string(jsonBytes))
	}()

	return promise
}

// =============================================================================
// Signing API
// =============================================================================

// signGenerateKeys creates a fresh key pair, replacing any existing one.
// Returns: {publicKey} JSON
func signGenerateKeys(this js.Value, args []js.Value) interface{} {
	if signSvc == nil {
		return errorResult("not initialized")
	}

	pair, err := signSvc.GenerateKeyPair()
	if err != nil {
		return errorResult("keygen failed: " + err.Error())
	}

	bytes, _ := json.Marshal(pair)
	return string(bytes)
}

// signEnsureKeys returns the stored public key, generating a pair on first use.
func signEnsureKeys(this js.Value, args []js.Value) interface{} {
	if signSvc == nil {
		return errorResult("not initialized")
	}

	pair, err := signSvc.EnsureKeyPair()
	if err != nil {
		return errorResult("ensure failed: " + err.Error())
	}

	bytes, _ := json.Marshal(pair)
	return string(bytes)
}

// signPublicKey returns the stored public key or null.
func signPublicKey(this js.Value, args []js.Value) interface{} {
	if signSvc == nil {
		return errorResult("not initialized")
	}

	pub, err := signSvc.PublicKey()
	if err != nil {
		return errorResult("read failed: " + err.Error())
	}
	if pub == "" {
		return "null"
	}
	return pub
}

// signData signs a document body with the stored private key.
// Args: [text string]
// Returns: base64 signature
func signData(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("signData requires 1 arg: text")
	}
	if signSvc == nil {
		return errorResult("not initialized")
	}

	sig, err := signSvc.Sign([]byte(args[0].String()))
	if err != nil {
		return errorResult("sign failed: " + err.Error())
	}
	return sig
}

// signVerify checks a signature against a document body.
// Args: [text string, signature string, publicKey string (optional, defaults to stored)]
func signVerify(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("signVerify requires 2+ args: text, signature, [publicKey]")
	}
	if signSvc == nil {
		return errorResult("not initialized")
	}

	publicKey := ""
	if len(args) > 2 && args[2].String() != "" && args[2].String() != "null" {
		publicKey = args[2].String()
	}

	ok, err := signSvc.Verify([]byte(args[0].String()), args[1].String(), publicKey)
	if err != nil {
		return errorResult("verify failed: " + err.Error())
	}
	return ok
}

// signHash returns the hex SHA-256 fingerprint of a document body.
// Args: [text string]
func signHash(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("signHash requires 1 arg: text")
	}
	return signing.Hash([]byte(args[0].String()))
}

// signClearKeys removes both key halves.
func signClearKeys(this js.Value, args []js.Value) interface{} {
	if signSvc == nil {
		return errorResult("not initialized")
	}
	if err := signSvc.ClearKeys(); err != nil {
		return errorResult("clear failed: " + err.Error())
	}
	return successResult("cleared")
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
