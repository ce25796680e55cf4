package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"isoatthetop.com/web/internal/analytics"
	"isoatthetop.com/web/internal/cms"
	"isoatthetop.com/web/internal/config"
	"isoatthetop.com/web/internal/contact"
	handlersPkg "isoatthetop.com/web/internal/handlers"
	"isoatthetop.com/web/internal/i18n"
	"isoatthetop.com/web/internal/preference"
	"isoatthetop.com/web/internal/sitedata"
)

const testCSRF = "0123456789abcdef0123456789abcdef"

func testData() fstest.MapFS {
	return fstest.MapFS{
		"data/config.json": {Data: []byte(`{"brandName":"Iso At The Top","email":"contact@isoatthetop.com","phone":"0651185862"}`)},
		"data/weeks.json": {Data: []byte(`[
			{"season":"winter","start":"2026-12-18","end":"2026-12-25","price":900,"status":"booked"},
			{"season":"winter","start":"2026-12-19","end":"2026-12-26","price":1250,"status":"available","holidays":["A","B"]},
			{"season":"winter","start":"2027-01-02","end":"2027-01-09","price":800,"status":"option","holidays":[]},
			{"season":"summer","start":"2027-07-03","end":"2027-07-10","price":700,"status":"available"}
		]`)},
		"data/media.json": {Data: []byte(`[
			{"season":"winter","src":"media/hiver/salon.jpg","alt":{"fr":"Salon","en":"Living room"},"caption":{"en":"Cosy"}},
			{"season":"summer","src":"media/ete/lac.jpg","alt":{"en":"Lake"}}
		]`)},
		"data/reviews.json": {Data: []byte(`{"reviews":[{"excerpt":{"en":"Great stay"},"tripType":{"en":"Family"},"date":"2026-02-21","source":"Airbnb"}]}`)},
	}
}

// newTestRouter builds the application router over test data.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	// ensure templates reparse each request and set correct paths
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	var err error
	i18nBundle, err = i18n.Load("../../locales", "en", []string{"en", "fr"})
	if err != nil {
		t.Fatalf("load i18n: %v", err)
	}
	site = sitedata.NewSite(sitedata.NewLoader(sitedata.NewFSFetcher(testData())), zap.NewNop())
	legalStore = cms.NewStore("../../content")
	prefs = preference.NewCookieStore(false)
	flash, err = contact.NewFlash([]byte(strings.Repeat("k", 32)), false)
	if err != nil {
		t.Fatalf("flash: %v", err)
	}
	contactSvc = contact.NewService(contact.NewRelay(nil), contact.NewLimiter(time.Millisecond, 100), zap.NewNop())
	siteAnalytics = handlersPkg.NewAnalytics("isoatthetop", false)
	baseURL = "https://isoatthetop.com"
	formEndpoint = ""
	nowFunc = func() time.Time { return time.Date(2026, time.December, 18, 10, 0, 0, 0, time.Local) }
	t.Cleanup(func() {
		nowFunc = time.Now
		formEndpoint = ""
	})
	return newRouter(zap.NewNop(), nil, analytics.Nop{}, false)
}

func doRequest(t *testing.T, srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func contactPost(target string, form url.Values) *http.Request {
	form.Set(contact.CSRFField, testCSRF)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	return req
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t)
	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestRootRedirectsByAcceptLanguage(t *testing.T) {
	srv := newTestRouter(t)
	cases := map[string]string{
		"fr-FR,fr;q=0.9,en;q=0.8": "/fr/",
		"en-GB":                   "/en/",
		"de":                      "/en/",
		"":                        "/en/",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Accept-Language", header)
		}
		rec := doRequest(t, srv, req)
		if rec.Code != http.StatusFound {
			t.Fatalf("%q: expected 302, got %d", header, rec.Code)
		}
		if got := rec.Header().Get("Location"); got != want {
			t.Fatalf("%q: expected %s, got %s", header, want, got)
		}
		if !strings.Contains(strings.Join(rec.Header().Values("Vary"), ","), "Accept-Language") {
			t.Fatalf("%q: expected Vary: Accept-Language", header)
		}
	}
}

func TestLocaleHomeResolvesSeason(t *testing.T) {
	srv := newTestRouter(t)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/fr/", nil))
	if got := rec.Header().Get("Location"); rec.Code != http.StatusFound || got != "/fr/hiver/" {
		t.Fatalf("expected 302 to /fr/hiver/ in December, got %d %s", rec.Code, got)
	}

	req := httptest.NewRequest(http.MethodGet, "/fr/", nil)
	req.AddCookie(&http.Cookie{Name: preference.CookieName, Value: "summer"})
	rec = doRequest(t, srv, req)
	if got := rec.Header().Get("Location"); got != "/fr/ete/" {
		t.Fatalf("expected stored summer preference, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/fr/?ghp="+url.QueryEscape("/isoatthetop/fr/ete/?photo=1"), nil)
	rec = doRequest(t, srv, req)
	if got := rec.Header().Get("Location"); got != "/fr/ete/?photo=1" {
		t.Fatalf("expected ghp target, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/fr/?ghp="+url.QueryEscape("https://evil.example/fr/ete/"), nil)
	rec = doRequest(t, srv, req)
	if got := rec.Header().Get("Location"); got != "/fr/hiver/" {
		t.Fatalf("expected absolute ghp to be ignored, got %s", got)
	}
}

func TestSeasonPageRenders(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/fr/hiver/", nil)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if c := findCookie(rec, preference.CookieName); c == nil || c.Value != "winter" {
		t.Fatalf("expected season preference cookie, got %+v", c)
	}
	doc := document(t, rec)

	if lang, _ := doc.Find("html").Attr("lang"); lang != "fr" {
		t.Fatalf("expected lang fr, got %q", lang)
	}
	if href, _ := doc.Find(`link[rel="canonical"]`).Attr("href"); href != "https://isoatthetop.com/fr/hiver/" {
		t.Fatalf("unexpected canonical %q", href)
	}
	if href, _ := doc.Find(`link[hreflang="en"]`).Attr("href"); href != "https://isoatthetop.com/en/winter/" {
		t.Fatalf("unexpected en alternate %q", href)
	}
	if href, _ := doc.Find("a.locale-switch").Attr("href"); href != "/en/winter/" {
		t.Fatalf("unexpected other locale link %q", href)
	}
	if !strings.Contains(doc.Find(`script[type="application/ld+json"]`).First().Text(), "VacationRental") {
		t.Fatalf("expected VacationRental JSON-LD")
	}
	if gc, _ := doc.Find("script[data-goatcounter]").Attr("data-goatcounter"); gc != "https://isoatthetop.goatcounter.com/count" {
		t.Fatalf("unexpected goatcounter endpoint %q", gc)
	}
	for _, id := range []string{"appartement", "reserver", "tarifs", "galerie", "plan-des-pistes", "activites", "acces", "avis", "contact"} {
		if doc.Find("#"+id).Length() != 1 {
			t.Fatalf("expected section #%s", id)
		}
	}

	rows := doc.Find("table.weeks tbody tr")
	if rows.Length() != 2 {
		t.Fatalf("expected 2 upcoming weeks, got %d", rows.Length())
	}
	first := rows.First().Find("td")
	if got := first.Eq(0).Text(); got != "19 déc. → 26 déc. 2026" {
		t.Fatalf("unexpected week label %q", got)
	}
	if got := first.Eq(2).Text(); got != "Disponible" {
		t.Fatalf("unexpected status %q", got)
	}
	if got := rows.Eq(1).Find("td").Eq(3).Text(); got != "Hors vacances scolaires" {
		t.Fatalf("unexpected holidays label %q", got)
	}

	if got := doc.Find(".rating").Text(); !strings.Contains(got, "5 étoiles sur Airbnb") {
		t.Fatalf("expected fallback rating text, got %q", got)
	}
	if token, _ := doc.Find(`input[name="csrf_token"]`).Attr("value"); token != testCSRF {
		t.Fatalf("expected csrf token in form, got %q", token)
	}
	if doc.Find(".contact-phone a[href^='tel:']").Length() != 0 {
		t.Fatalf("phone must stay hidden until revealed")
	}
	if doc.Find(".lightbox").Length() != 0 {
		t.Fatalf("lightbox must be closed")
	}
}

func TestSeasonPageRevealsPhone(t *testing.T) {
	srv := newTestRouter(t)
	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/en/winter/?reveal=phone", nil))
	doc := document(t, rec)
	link := doc.Find(".contact-phone a")
	if href, _ := link.Attr("href"); href != "tel:+33651185862" {
		t.Fatalf("unexpected tel href %q", href)
	}
	if got := link.Text(); got != "+33 6 51 18 58 62" {
		t.Fatalf("unexpected phone %q", got)
	}
}

func TestSeasonGalleryAndLightbox(t *testing.T) {
	srv := newTestRouter(t)
	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/en/winter/?gallery=summer&photo=0", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c := findCookie(rec, preference.CookieName); c == nil || c.Value != "summer" {
		t.Fatalf("expected gallery season to be stored, got %+v", c)
	}
	doc := document(t, rec)
	if doc.Find(".gallery--summer li").Length() != 1 {
		t.Fatalf("expected summer gallery")
	}
	if src, _ := doc.Find(".lightbox img").Attr("src"); src != "/media/ete/lac.jpg" {
		t.Fatalf("unexpected lightbox src %q", src)
	}
	if doc.Find(".lightbox-zoom").Length() != 0 {
		t.Fatalf("photos are not zoomable")
	}
	if href, _ := doc.Find(".lightbox-close").Attr("href"); href != "/en/winter/?gallery=summer#gallery" {
		t.Fatalf("unexpected close link %q", href)
	}
}

func TestSlopeMapLightboxZoom(t *testing.T) {
	srv := newTestRouter(t)
	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/fr/hiver/?slopes=1&zoom=2", nil))
	doc := document(t, rec)
	box := doc.Find(".lightbox.lightbox--zoomable")
	if box.Length() != 1 {
		t.Fatalf("expected zoomable lightbox")
	}
	if alt, _ := box.Find("img").Attr("alt"); alt != "Plan des pistes Isola 2000" {
		t.Fatalf("unexpected alt %q", alt)
	}
	if got := box.Find(".lightbox-zoom-level").Text(); got != "200%" {
		t.Fatalf("unexpected zoom level %q", got)
	}
	level := box.Find(".lightbox-zoom-level")
	if label, _ := level.Attr("aria-label"); label != "Réinitialiser le zoom (actuellement 200 %)" {
		t.Fatalf("unexpected reset label %q", label)
	}
	if href, _ := level.Attr("href"); href != "/fr/hiver/?slopes=1" {
		t.Fatalf("unexpected reset link %q", href)
	}
	if box.Find(".lightbox-stage.is-pannable").Length() != 1 {
		t.Fatalf("zoomed map should be pannable")
	}
}

func TestSeasonSegmentRouting(t *testing.T) {
	srv := newTestRouter(t)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/fr/winter/?photo=1", nil))
	if got := rec.Header().Get("Location"); rec.Code != http.StatusMovedPermanently || got != "/fr/hiver/?photo=1" {
		t.Fatalf("expected canonical redirect, got %d %s", rec.Code, got)
	}

	rec = doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/fr/hiver", nil))
	if got := rec.Header().Get("Location"); rec.Code != http.StatusMovedPermanently || got != "/fr/hiver/" {
		t.Fatalf("expected trailing slash redirect, got %d %s", rec.Code, got)
	}

	rec = doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/fr/printemps/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	doc := document(t, rec)
	if !strings.Contains(doc.Find(".not-found").Text(), "Page introuvable.") {
		t.Fatalf("expected localized 404 body")
	}
	if href, _ := doc.Find(".not-found a").Attr("href"); href != "/fr/" {
		t.Fatalf("unexpected home link %q", href)
	}

	rec = doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/en/404/", nil))
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Back to home") {
		t.Fatalf("expected english 404 page, got %d", rec.Code)
	}
}

func TestFallbackRedirects(t *testing.T) {
	srv := newTestRouter(t)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/isoatthetop/fr/ete/", nil))
	want := "/fr/?ghp=" + url.QueryEscape("/isoatthetop/fr/ete/")
	if got := rec.Header().Get("Location"); rec.Code != http.StatusFound || got != want {
		t.Fatalf("expected %s, got %d %s", want, rec.Code, got)
	}

	req := httptest.NewRequest(http.MethodGet, "/de/x", nil)
	req.Header.Set("Accept-Language", "fr")
	rec = doRequest(t, srv, req)
	if got := rec.Header().Get("Location"); got != "/fr/?ghp="+url.QueryEscape("/de/x") {
		t.Fatalf("expected negotiated locale, got %s", got)
	}

	rec = doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/missing.png", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected plain 404 for files, got %d", rec.Code)
	}
}

func TestContactWithoutEndpointRedirectsToMailto(t *testing.T) {
	srv := newTestRouter(t)
	rec := doRequest(t, srv, contactPost("/en/summer/contact", url.Values{"name": {"Ann"}, "message": {"Two weeks"}}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d; body=%s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	want := "mailto:contact%40isoatthetop.com?subject=Stay%20request%20%E2%80%93%20Iso%20At%20The%20Top&body=name%3A%20Ann%0Amessage%3A%20Two%20weeks"
	if loc != want {
		t.Fatalf("unexpected mailto\n got %s\nwant %s", loc, want)
	}
}

func TestContactEmptyFormStillOpensMailClient(t *testing.T) {
	srv := newTestRouter(t)
	rec := doRequest(t, srv, contactPost("/en/winter/contact", url.Values{"name": {""}}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d; body=%s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if loc != "mailto:contact%40isoatthetop.com?subject=Stay%20request%20%E2%80%93%20Iso%20At%20The%20Top&body=" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestContactRejectsMissingCSRF(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/en/summer/contact", strings.NewReader("name=Ann"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestContactRelay(t *testing.T) {
	var mu sync.Mutex
	var received []url.Values
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		mu.Lock()
		received = append(received, r.PostForm)
		mu.Unlock()
		if r.Header.Get(contact.SubmissionIDHeader) == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer endpoint.Close()

	srv := newTestRouter(t)
	formEndpoint = endpoint.URL

	// htmx gets the banner fragment
	req := contactPost("/en/summer/contact", url.Values{"name": {"Ann"}, "email": {"ann@example.com"}})
	req.Header.Set("HX-Request", "true")
	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := document(t, rec)
	banner := doc.Find("#contact-banner.banner--success")
	if banner.Length() != 1 {
		t.Fatalf("expected success banner, got %s", rec.Body.String())
	}
	if ms, _ := banner.Attr("data-dismiss-after"); ms != "5000" {
		t.Fatalf("unexpected dismiss delay %q", ms)
	}

	mu.Lock()
	if len(received) != 1 || received[0].Get("name") != "Ann" || received[0].Has(contact.CSRFField) {
		t.Fatalf("unexpected relayed form %v", received)
	}
	mu.Unlock()

	// plain posts redirect back and the banner survives in a flash cookie
	rec = doRequest(t, srv, contactPost("/en/summer/contact", url.Values{"name": {"Bob"}}))
	if got := rec.Header().Get("Location"); rec.Code != http.StatusSeeOther || got != "/en/summer/#contact" {
		t.Fatalf("expected redirect to contact section, got %d %s", rec.Code, got)
	}
	flashCookie := findCookie(rec, "isoatthetop_flash")
	if flashCookie == nil {
		t.Fatalf("expected flash cookie")
	}
	req = httptest.NewRequest(http.MethodGet, "/en/summer/", nil)
	req.AddCookie(flashCookie)
	rec = doRequest(t, srv, req)
	if document(t, rec).Find("#contact-banner.banner--success").Length() != 1 {
		t.Fatalf("expected banner after redirect")
	}
}

func TestContactRelayFailureShowsError(t *testing.T) {
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer endpoint.Close()

	srv := newTestRouter(t)
	formEndpoint = endpoint.URL
	req := contactPost("/fr/ete/contact", url.Values{"name": {"Ann"}})
	req.Header.Set("HX-Request", "true")
	rec := doRequest(t, srv, req)
	doc := document(t, rec)
	if !strings.Contains(doc.Find("#contact-banner.banner--error").Text(), "n'a pas pu être envoyée") {
		t.Fatalf("expected french error banner, got %s", rec.Body.String())
	}
}

func TestRateSheetPDF(t *testing.T) {
	srv := newTestRouter(t)
	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/en/winter/tarifs.pdf", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatalf("expected a PDF document")
	}
}

func TestLegalPage(t *testing.T) {
	srv := newTestRouter(t)
	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/fr/mentions-legales/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := document(t, rec)
	if got := doc.Find(".legal h1").Text(); got != "Mentions légales" {
		t.Fatalf("unexpected title %q", got)
	}
	prose := doc.Find(".prose").Text()
	if !strings.Contains(prose, "contact@isoatthetop.com") {
		t.Fatalf("expected expanded placeholders, got %q", prose)
	}
	if got := doc.Find(".legal-year").Text(); got != "© 2026 Iso At The Top" {
		t.Fatalf("unexpected copyright line %q", got)
	}
	if strings.Contains(prose, "{brand}") {
		t.Fatalf("placeholders left in body")
	}
	if href, _ := doc.Find(`.legal a[hreflang="en"]`).Attr("href"); href != "/en/mentions-legales/" {
		t.Fatalf("unexpected other locale link %q", href)
	}
	if desc, _ := doc.Find(`meta[name="description"]`).Attr("content"); !strings.HasPrefix(desc, "Éditeur") {
		t.Fatalf("expected front matter description, got %q", desc)
	}
}

type rewriteTransport struct{ target *url.URL }

func (rt rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func TestServerSideCountingDropsBrowserScript(t *testing.T) {
	hits := make(chan string, 4)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer api.Close()
	target, _ := url.Parse(api.URL)
	client := &http.Client{Transport: rewriteTransport{target: target}, Timeout: 2 * time.Second}

	newTestRouter(t)
	counter, settings := pageAnalytics(config.Config{GoatCounterCode: "isoatthetop", GoatCounterToken: "secret"}, client, zap.NewNop())
	if settings.GoatCounter.Enabled() {
		t.Fatalf("browser script must be off when the server counts views")
	}
	siteAnalytics = settings
	srv := newRouter(zap.NewNop(), nil, counter, false)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/en/winter/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if n := document(t, rec).Find("script[data-goatcounter]").Length(); n != 0 {
		t.Fatalf("expected no goatcounter script, found %d", n)
	}
	select {
	case path := <-hits:
		if path != "/api/v0/count" {
			t.Fatalf("unexpected api path %q", path)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("view was not counted server side")
	}
	select {
	case <-hits:
		t.Fatalf("view counted twice")
	case <-time.After(50 * time.Millisecond):
	}

	_, settings = pageAnalytics(config.Config{GoatCounterCode: "isoatthetop"}, client, zap.NewNop())
	if settings.GoatCounter.ScriptEndpoint() != "https://isoatthetop.goatcounter.com/count" {
		t.Fatalf("script should stay on without a token")
	}
}
