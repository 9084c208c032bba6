package pages

// AppShell is the single-page UI: login/register forms, the explain form
// (title+artist or pasted lyrics), the result pane, and the history sidebar.
// It talks to the /api endpoints with fetch and keeps no state of its own
// beyond the session cookie.
var AppShell = `
<!DOCTYPE html>
<html>
<head>
    <title>Song Explainer</title>
    <meta charset="utf-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 960px;
            margin: 0 auto;
            padding: 20px;
        }
        .layout { display: flex; gap: 24px; }
        .sidebar { width: 260px; border-right: 1px solid #ddd; padding-right: 16px; }
        .main { flex: 1; }
        textarea { width: 100%; min-height: 200px; }
        input { margin: 4px 0; display: block; }
        .error { color: #b00020; }
        .history-item { border-bottom: 1px solid #eee; padding: 8px 0; font-size: 0.9em; }
        .history-item .when { color: #888; font-size: 0.8em; }
        pre { white-space: pre-wrap; word-wrap: break-word; }
        #explanation { background: #f7f7f7; padding: 12px; border-radius: 6px; }
    </style>
</head>
<body>
    <h1>&#127925; Song Explainer</h1>
    <p>Get deep, fun explanations of any song lyrics instantly!</p>

    <div id="auth">
        <h2>Log in</h2>
        <div id="auth-error" class="error"></div>
        <input id="username" placeholder="Username">
        <input id="password" type="password" placeholder="Password">
        <button onclick="login()">Log in</button>
        <button onclick="register()">Register</button>
    </div>

    <div id="app" class="layout" style="display:none">
        <div class="sidebar">
            <h3>History</h3>
            <div id="history"></div>
            <button onclick="logout()">Log out</button>
        </div>
        <div class="main">
            <h2>Explain a song</h2>
            <div id="explain-error" class="error"></div>
            <input id="title" placeholder="Song title">
            <input id="artist" placeholder="Artist">
            <button onclick="explainSearch()">Explain by title/artist</button>
            <p>&mdash; or &mdash;</p>
            <textarea id="lyrics" placeholder="Paste lyrics here"></textarea>
            <button onclick="explainPaste()">Explain pasted lyrics</button>
            <h3 id="result-title"></h3>
            <pre id="explanation"></pre>
        </div>
    </div>

    <script>
    async function api(path, opts) {
        const resp = await fetch(path, Object.assign({headers: {'Content-Type': 'application/json'}}, opts));
        const body = await resp.json().catch(() => ({}));
        if (!resp.ok) throw new Error(body.error || ('request failed: ' + resp.status));
        return body;
    }
    async function register() {
        try {
            await api('/api/register', {method: 'POST', body: JSON.stringify({
                username: document.getElementById('username').value,
                password: document.getElementById('password').value,
            })});
            await login();
        } catch (e) { document.getElementById('auth-error').textContent = e.message; }
    }
    async function login() {
        try {
            await api('/api/login', {method: 'POST', body: JSON.stringify({
                username: document.getElementById('username').value,
                password: document.getElementById('password').value,
            })});
            document.getElementById('auth').style.display = 'none';
            document.getElementById('app').style.display = 'flex';
            await refreshHistory();
        } catch (e) { document.getElementById('auth-error').textContent = e.message; }
    }
    async function logout() {
        await api('/api/logout', {method: 'POST'});
        document.getElementById('app').style.display = 'none';
        document.getElementById('auth').style.display = 'block';
    }
    async function explainSearch() {
        await explain({
            title: document.getElementById('title').value,
            artist: document.getElementById('artist').value,
        });
    }
    async function explainPaste() {
        await explain({lyrics: document.getElementById('lyrics').value});
    }
    async function explain(body) {
        document.getElementById('explain-error').textContent = '';
        try {
            const result = await api('/api/explain', {method: 'POST', body: JSON.stringify(body)});
            document.getElementById('result-title').textContent =
                result.song.title ? result.song.title + ' by ' + result.song.artist : 'Pasted lyrics';
            document.getElementById('explanation').textContent = result.explanation;
            await refreshHistory();
        } catch (e) { document.getElementById('explain-error').textContent = e.message; }
    }
    async function refreshHistory() {
        const records = await api('/api/history');
        const el = document.getElementById('history');
        el.innerHTML = '';
        (records.history || []).forEach(r => {
            const div = document.createElement('div');
            div.className = 'history-item';
            div.textContent = r.song_title ? r.song_title + ' — ' + r.artist : '(pasted lyrics)';
            const when = document.createElement('div');
            when.className = 'when';
            when.textContent = r.timestamp;
            div.appendChild(when);
            el.appendChild(div);
        });
    }
    </script>
</body>
</html>`
