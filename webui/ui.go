package webui

import (
	"bytes"
	"html/template"
	"net/http"

	genaistudio "github.com/vismaychuriwala/GenAI-Studio"
)

const uiIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>{{.PageTitle}}</title>
  <link rel="stylesheet" href="/ui/styles.css" />
</head>
<body>
  <header class="topbar">
    <div class="brand">
      <div class="logo">{{.Icon}}</div>
      <div>
        <div class="title">{{.Title}}</div>
        <div class="subtitle" id="modelTag">&nbsp;</div>
      </div>
    </div>
    <div class="actions">
      <button id="btnClear" class="btn danger">Clear Chat History</button>
    </div>
  </header>

  <main class="chat">
    <div id="messages" class="messages"></div>

    <form id="composer" class="composer">
      <textarea id="inputMessage" placeholder="What would you like to know?" rows="2"></textarea>
      <button id="btnSend" class="btn primary" type="submit">Send</button>
    </form>

    <div class="hint" id="status">Ready.</div>
  </main>

  <script src="/ui/app.js"></script>
</body>
</html>
`

const uiStylesCSS = `
:root{
  --bg: #0b0f16;
  --panel: #0f1520;
  --border: rgba(255,255,255,0.10);
  --text: rgba(255,255,255,0.92);
  --muted: rgba(255,255,255,0.60);
  --accent: #4cc9f0;

  --btn: rgba(255,255,255,0.08);
  --btnHover: rgba(255,255,255,0.12);
  --btnPrimary: rgba(76,201,240,0.16);
  --btnPrimaryHover: rgba(76,201,240,0.22);
  --btnDanger: rgba(255,70,70,0.12);
  --btnDangerHover: rgba(255,70,70,0.18);

  --user: rgba(76,201,240,0.14);
  --assistant: rgba(255,255,255,0.06);
  --error: rgba(255,70,70,0.14);
}
@media (prefers-color-scheme: light) {
  :root{
    --bg: #f6f7fb;
    --panel: #ffffff;
    --border: rgba(20,30,50,0.12);
    --text: rgba(10,14,20,0.92);
    --muted: rgba(10,14,20,0.60);

    --btn: rgba(10,14,20,0.06);
    --btnHover: rgba(10,14,20,0.10);
    --btnPrimary: rgba(76,201,240,0.20);
    --btnPrimaryHover: rgba(76,201,240,0.28);
    --btnDanger: rgba(255,70,70,0.14);
    --btnDangerHover: rgba(255,70,70,0.22);

    --user: rgba(76,201,240,0.18);
    --assistant: rgba(10,14,20,0.05);
    --error: rgba(255,70,70,0.16);
  }
}

*{ box-sizing:border-box; }
html,body{ height:100%; }
body{
  margin:0;
  font-family: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial;
  color: var(--text);
  background: var(--bg);
  display:flex;
  flex-direction:column;
}

.topbar{
  display:flex;
  align-items:center;
  justify-content:space-between;
  gap:16px;
  padding:12px 16px;
  border-bottom: 1px solid var(--border);
  background: var(--panel);
}
.brand{ display:flex; align-items:center; gap:12px; }
.logo{ font-size:24px; }
.title{ font-weight:650; }
.subtitle{ font-size:12px; color: var(--muted); }
.actions{ display:flex; gap:8px; }

.btn{
  border:1px solid var(--border);
  background: var(--btn);
  color: var(--text);
  border-radius:8px;
  padding:8px 12px;
  cursor:pointer;
}
.btn:hover{ background: var(--btnHover); }
.btn.primary{ background: var(--btnPrimary); }
.btn.primary:hover{ background: var(--btnPrimaryHover); }
.btn.danger{ background: var(--btnDanger); }
.btn.danger:hover{ background: var(--btnDangerHover); }
.btn:disabled{ opacity:0.5; cursor:default; }

.chat{
  flex:1;
  display:flex;
  flex-direction:column;
  gap:10px;
  width:100%;
  max-width:860px;
  margin:0 auto;
  padding:16px;
  min-height:0;
}
.messages{
  flex:1;
  overflow-y:auto;
  display:flex;
  flex-direction:column;
  gap:8px;
  padding:4px;
}
.bubble{
  max-width:80%;
  padding:10px 12px;
  border:1px solid var(--border);
  border-radius:12px;
  white-space:pre-wrap;
  word-wrap:break-word;
  line-height:1.45;
}
.bubble.user{ align-self:flex-end; background: var(--user); }
.bubble.assistant{ align-self:flex-start; background: var(--assistant); }
.bubble.error{ align-self:flex-start; background: var(--error); }

.composer{ display:flex; gap:8px; align-items:flex-end; }
.composer textarea{
  flex:1;
  resize:none;
  border:1px solid var(--border);
  border-radius:10px;
  background: var(--panel);
  color: var(--text);
  padding:10px 12px;
  font: inherit;
}
.hint{ font-size:12px; color: var(--muted); min-height:16px; }
`

const uiAppJS = `
(function(){
  const elMessages = document.getElementById('messages');
  const elStatus = document.getElementById('status');
  const elModelTag = document.getElementById('modelTag');
  const elInput = document.getElementById('inputMessage');
  const elComposer = document.getElementById('composer');
  const btnSend = document.getElementById('btnSend');
  const btnClear = document.getElementById('btnClear');

  let sessionID = sessionStorage.getItem('genai-session') || '';
  let busy = false;

  function setStatus(s){ elStatus.textContent = s || ''; }
  function setBusy(b){
    busy = b;
    btnSend.disabled = b;
    elInput.disabled = b;
    setStatus(b ? 'Thinking...' : 'Ready.');
  }

  async function apiGET(url){
    const r = await fetch(url, { cache: 'no-store' });
    const txt = await r.text();
    let j = null;
    try { j = txt ? JSON.parse(txt) : null; } catch { j = { ok:false, error: txt }; }
    return { status: r.status, json: j };
  }
  async function apiPOST(url, body){
    const r = await fetch(url, {
      method: 'POST',
      headers: { 'Content-Type':'application/json', 'Accept':'application/json' },
      body: JSON.stringify(body || {}),
      cache: 'no-store'
    });
    const txt = await r.text();
    let j = null;
    try { j = txt ? JSON.parse(txt) : null; } catch { j = { ok:false, error: txt }; }
    return { status: r.status, json: j };
  }

  function addBubble(role, content){
    const div = document.createElement('div');
    div.className = 'bubble ' + role;
    div.textContent = content;
    elMessages.appendChild(div);
    elMessages.scrollTop = elMessages.scrollHeight;
  }

  function renderTurns(turns){
    elMessages.innerHTML = '';
    (turns || []).forEach(function(t){ addBubble(t.role, t.content); });
  }

  function renderUsage(usage){
    if (!usage) return;
    setStatus('Tokens: ' + usage.prompt_tokens + ' in / ' + usage.completion_tokens + ' out');
  }

  async function ensureSession(){
    if (sessionID){
      const res = await apiGET('/api/history?session_id=' + encodeURIComponent(sessionID));
      if (res.status === 200 && res.json && res.json.ok){
        if (res.json.model) elModelTag.textContent = res.json.model;
        renderTurns(res.json.turns);
        return;
      }
      sessionID = '';
    }
    const res = await apiPOST('/api/session/new', {});
    if (res.json && res.json.ok){
      sessionID = res.json.session_id;
      sessionStorage.setItem('genai-session', sessionID);
      if (res.json.model) elModelTag.textContent = res.json.model;
      renderTurns([]);
    } else {
      setStatus('Could not start a session: ' + ((res.json && res.json.error) || res.status));
    }
  }

  async function sendMessage(){
    const text = elInput.value.trim();
    if (!text || busy || !sessionID) return;
    elInput.value = '';
    addBubble('user', text);
    setBusy(true);
    let usage = null;
    try {
      const res = await apiPOST('/api/chat', { session_id: sessionID, message: text });
      if (res.json && res.json.ok){
        addBubble('assistant', res.json.reply);
        usage = res.json.usage || null;
      } else {
        addBubble('error', (res.json && res.json.error) || ('request failed: ' + res.status));
      }
    } catch (err) {
      addBubble('error', String(err));
    }
    setBusy(false);
    if (usage) renderUsage(usage);
    elInput.focus();
  }

  elComposer.addEventListener('submit', function(e){ e.preventDefault(); sendMessage(); });
  elInput.addEventListener('keydown', function(e){
    if (e.key === 'Enter' && !e.shiftKey){ e.preventDefault(); sendMessage(); }
  });

  btnClear.addEventListener('click', async function(){
    if (!sessionID || busy) return;
    const res = await apiPOST('/api/history/clear', { session_id: sessionID });
    if (res.json && res.json.ok){
      renderTurns(res.json.turns);
      setStatus('History cleared.');
    } else {
      setStatus('Clear failed: ' + ((res.json && res.json.error) || res.status));
    }
  });

  ensureSession();
})();
`

func (s *Server) registerUI(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	page := s.renderIndex()

	mux.HandleFunc("GET /ui", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)
	})

	mux.HandleFunc("GET /ui/styles.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(uiStylesCSS))
	})

	mux.HandleFunc("GET /ui/app.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(uiAppJS))
	})
}

// renderIndex fills the configured page chrome into the index template
// once at registration time.
func (s *Server) renderIndex() []byte {
	app := s.App
	if app.PageTitle == "" && app.Title == "" && app.Icon == "" {
		app = genaistudio.DefaultConfig().App
	}

	tmpl := template.Must(template.New("index").Parse(uiIndexHTML))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, app); err != nil {
		s.logger().Error("Error rendering index page", "error", err)
		return []byte(uiIndexHTML)
	}
	return buf.Bytes()
}
