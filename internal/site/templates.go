package site

// pageTemplate is the Go html/template for the generated browser document.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} Browser</title>
  <meta name="description" content="{{.Description}}">
  <meta name="keywords" content="{{.Keywords}}">
  <meta name="version" content="{{.Version}}">
  <meta name="generator" content="classview">
  <meta name="classview-system" content="{{.SystemKey}}">
  <meta name="classview-build" content="{{.BuildID}}">
  <meta name="classview-generated" content="{{.Generated}}">
  <link rel="icon" href="{{.Favicon}}">
  <style>
:root { --accent: {{.Accent}}; }
{{.CSS}}
  </style>
</head>
<body>
  <header class="top-bar">
    <span class="brand-icon" aria-hidden="true">{{.Icon}}</span>
    <h1 class="project-title">{{.Title}}</h1>
    {{if .Edition}}<span class="edition">{{.Edition}}</span>{{end}}
    <div class="search-bar">
      <svg class="search-icon" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <circle cx="11" cy="11" r="8"/><line x1="21" y1="21" x2="16.65" y2="16.65"/>
      </svg>
      <input type="search" id="search-input" placeholder="Search codes and names..." autocomplete="off" aria-label="Search">
      <span class="search-hint">/</span>
    </div>
    <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
      <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="4.22" y1="4.22" x2="5.64" y2="5.64"/><line x1="18.36" y1="18.36" x2="19.78" y2="19.78"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/><line x1="4.22" y1="19.78" x2="5.64" y2="18.36"/><line x1="18.36" y1="5.64" x2="19.78" y2="4.22"/>
      </svg>
      <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
      </svg>
    </button>
  </header>
  <div class="layout">
    <nav class="sidebar" id="sidebar">
      <dl class="stats" id="stats">
        <div><dt>Total items</dt><dd id="stat-total">{{.Stats.Total}}</dd></div>
        <div><dt>Top level</dt><dd id="stat-top">{{.Stats.TopLevel}}</dd></div>
        <div><dt>Depth</dt><dd id="stat-depth">{{.Stats.MaxDepth}}</dd></div>
      </dl>
      <div class="tree" id="tree" role="tree"></div>
      <p class="no-results" id="no-results" hidden>No matching items.</p>
    </nav>
    <main class="content">
      <nav class="breadcrumb" id="breadcrumb" aria-label="Breadcrumb"></nav>
      <section class="detail" id="detail">
        <div class="empty-state" id="empty-state">
          <h2>Select an item</h2>
          <p>Choose an entry in the tree or search for a code or name.</p>
        </div>
        <div class="detail-body" id="detail-body" hidden>
          <div class="detail-code" id="detail-code"></div>
          <h2 class="detail-name" id="detail-name"></h2>
          <p class="detail-description" id="detail-description"></p>
          <dl class="detail-stats">
            <div><dt>Children</dt><dd id="stat-children">0</dd></div>
            <div><dt>Descendants</dt><dd id="stat-descendants">0</dd></div>
            <div><dt>Level</dt><dd id="stat-level">0</dd></div>
          </dl>
        </div>
      </section>
      <section class="hierarchy" id="hierarchy-panel" hidden>
        <h3>Hierarchy</h3>
        <ol class="hierarchy-list" id="hierarchy"></ol>
      </section>
      <section class="children" id="children-panel" hidden>
        <h3>Children</h3>
        <div class="children-grid" id="children"></div>
      </section>
      <section class="about">
        {{.About}}
      </section>
    </main>
  </div>
  <script>window.CLASSVIEW_DATA = {{.Payload}};</script>
  <script>
{{.Script}}
  </script>
</body>
</html>`

// cssContent is the inline stylesheet for the browser document.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent-light: rgba(34, 139, 230, 0.12);
  --match-bg: #fff3bf;
  --sidebar-width: 360px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
}

[data-theme="dark"] {
  --bg: #1a1b26;
  --bg-secondary: #1f2030;
  --bg-sidebar: #16171f;
  --text: #c0caf5;
  --text-secondary: #a9b1d6;
  --text-muted: #565f89;
  --border: #292e42;
  --accent-light: rgba(122, 162, 247, 0.15);
  --match-bg: #3b3a1e;
  --shadow: 0 1px 3px rgba(0,0,0,0.3);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.4);
}

/* ============ Reset & Base ============ */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.6;
  min-height: 100vh;
}

[hidden] { display: none !important; }

/* ============ Top bar ============ */
.top-bar {
  display: flex;
  align-items: center;
  gap: 12px;
  padding: 10px 24px;
  border-bottom: 1px solid var(--border);
  background: var(--bg);
  position: sticky;
  top: 0;
  z-index: 50;
}

.brand-icon { font-size: 1.5rem; }

.project-title {
  font-size: 1.15rem;
  font-weight: 700;
  color: var(--accent);
  white-space: nowrap;
}

.edition {
  font-size: 0.8rem;
  color: var(--text-muted);
  white-space: nowrap;
}

.search-bar {
  position: relative;
  flex: 1;
  max-width: 520px;
  margin-left: auto;
}

.search-icon {
  position: absolute;
  left: 10px;
  top: 50%;
  transform: translateY(-50%);
  color: var(--text-muted);
}

#search-input {
  width: 100%;
  padding: 8px 36px 8px 32px;
  border: 1px solid var(--border);
  border-radius: 6px;
  font-size: 0.9rem;
  background: var(--bg-secondary);
  color: var(--text);
  outline: none;
  transition: border-color 0.2s;
}

#search-input:focus {
  border-color: var(--accent);
  box-shadow: 0 0 0 3px var(--accent-light);
}

.search-hint {
  position: absolute;
  right: 10px;
  top: 50%;
  transform: translateY(-50%);
  font-size: 0.75rem;
  color: var(--text-muted);
  border: 1px solid var(--border);
  border-radius: 4px;
  padding: 0 6px;
}

.theme-toggle {
  background: none;
  border: 1px solid var(--border);
  border-radius: 6px;
  color: var(--text);
  cursor: pointer;
  padding: 6px;
  display: flex;
}

.theme-toggle:hover { border-color: var(--accent); }

[data-theme="dark"] .sun-icon { display: inline; }
[data-theme="dark"] .moon-icon { display: none; }
[data-theme="light"] .sun-icon { display: none; }
[data-theme="light"] .moon-icon { display: inline; }

/* ============ Layout ============ */
.layout {
  display: flex;
  min-height: calc(100vh - 58px);
}

.sidebar {
  width: var(--sidebar-width);
  flex-shrink: 0;
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  overflow-y: auto;
  max-height: calc(100vh - 58px);
  position: sticky;
  top: 58px;
}

.stats {
  display: flex;
  gap: 8px;
  padding: 12px 16px;
  border-bottom: 1px solid var(--border);
}

.stats > div, .detail-stats > div {
  flex: 1;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 6px;
  padding: 6px 8px;
  text-align: center;
}

.stats dt, .detail-stats dt {
  font-size: 0.7rem;
  text-transform: uppercase;
  color: var(--text-muted);
}

.stats dd, .detail-stats dd {
  font-size: 1.05rem;
  font-weight: 700;
  color: var(--accent);
}

/* ============ Tree ============ */
.tree { padding: 8px 0; }

.tree ul {
  list-style: none;
  padding-left: 0;
}

.tree ul ul { padding-left: 16px; }

.tree-row {
  display: flex;
  align-items: center;
  gap: 4px;
  padding: 3px 12px;
  font-size: 0.84rem;
  cursor: pointer;
  border-radius: 4px;
  white-space: nowrap;
}

.tree-row:hover { background: var(--accent-light); }

.tree-toggle {
  width: 16px;
  flex-shrink: 0;
  border: none;
  background: none;
  color: var(--text-muted);
  cursor: pointer;
  font-size: 0.6rem;
  transition: transform 0.15s;
}

.tree-toggle.leaf { visibility: hidden; }

.tree-node.expanded > .tree-row > .tree-toggle { transform: rotate(90deg); }

.tree-node > ul { display: none; }
.tree-node.expanded > ul { display: block; }
.tree-node.filtered-out { display: none; }

.tree-code {
  font-family: "SF Mono", Menlo, Consolas, monospace;
  font-size: 0.78rem;
  color: var(--accent);
}

.tree-name {
  color: var(--text-secondary);
  overflow: hidden;
  text-overflow: ellipsis;
}

.tree-node.selected > .tree-row {
  background: var(--accent-light);
  font-weight: 600;
}

.tree-node.match > .tree-row .tree-name,
.tree-node.match > .tree-row .tree-code {
  background: var(--match-bg);
}

.no-results {
  padding: 12px 16px;
  color: var(--text-muted);
  font-size: 0.85rem;
}

/* ============ Content ============ */
.content {
  flex: 1;
  min-width: 0;
  padding: 24px 40px 60px;
  max-width: 960px;
}

.breadcrumb {
  font-size: 0.82rem;
  color: var(--text-muted);
  margin-bottom: 16px;
  min-height: 1.2em;
}

.breadcrumb a {
  color: var(--accent);
  text-decoration: none;
  cursor: pointer;
}

.breadcrumb a:hover { text-decoration: underline; }

.breadcrumb .separator { margin: 0 6px; }

.detail {
  background: var(--bg-secondary);
  border: 1px solid var(--border);
  border-radius: 8px;
  padding: 20px 24px;
  box-shadow: var(--shadow);
}

.empty-state { color: var(--text-muted); }

.detail-code {
  font-family: "SF Mono", Menlo, Consolas, monospace;
  color: var(--accent);
  font-weight: 600;
}

.detail-name { margin: 4px 0 8px; }

.detail-description { color: var(--text-secondary); }

.detail-stats {
  display: flex;
  gap: 8px;
  margin-top: 16px;
}

.hierarchy, .children, .about { margin-top: 28px; }

.hierarchy h3, .children h3 {
  font-size: 0.8rem;
  text-transform: uppercase;
  color: var(--text-muted);
  margin-bottom: 8px;
}

.hierarchy-list { list-style: none; }

.hierarchy-list li {
  display: flex;
  gap: 10px;
  padding: 4px 8px;
  border-left: 3px solid var(--border);
  cursor: pointer;
}

.hierarchy-list li.current {
  border-left-color: var(--accent);
  font-weight: 600;
  cursor: default;
}

.hierarchy-level {
  color: var(--text-muted);
  font-size: 0.75rem;
  min-width: 3.5em;
}

.children-grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(200px, 1fr));
  gap: 10px;
}

.child-card {
  text-align: left;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 6px;
  padding: 10px 12px;
  cursor: pointer;
  color: var(--text);
  font: inherit;
  position: relative;
}

.child-card:hover {
  border-color: var(--accent);
  box-shadow: var(--shadow-lg);
}

.child-card .child-code {
  display: block;
  font-family: "SF Mono", Menlo, Consolas, monospace;
  font-size: 0.78rem;
  color: var(--accent);
}

.child-card .badge {
  position: absolute;
  top: 8px;
  right: 8px;
  background: var(--accent);
  color: #fff;
  border-radius: 10px;
  font-size: 0.7rem;
  padding: 0 7px;
}

.about {
  font-size: 0.9rem;
  color: var(--text-secondary);
  border-top: 1px solid var(--border);
  padding-top: 16px;
}

.about p + p { margin-top: 8px; }

@media (max-width: 768px) {
  .layout { flex-direction: column; }
  .sidebar { width: 100%; max-height: 50vh; position: static; }
  .content { padding: 16px; }
  .edition { display: none; }
}
`

// jsContent is the in-browser tree viewer: indices, tree rendering, selection
// panels, debounced search, theme persistence and keyboard shortcuts.
const jsContent = `(function() {
  "use strict";

  var data = window.CLASSVIEW_DATA || { forest: [] };
  var forest = data.forest || [];
  var html = document.documentElement;
  var THEME_KEY = "classview-theme";
  var SEARCH_DELAY = typeof data.searchDelayMs === "number" ? data.searchDelayMs : 200;
  var NO_DESCRIPTION = "No description available.";

  // ===== Indices =====
  var nodeById = Object.create(null);
  var parentById = Object.create(null);
  var elementById = Object.create(null);

  function children(node) { return node.children || []; }

  function buildMaps(nodes, parent) {
    nodes.forEach(function(node) {
      nodeById[node.id] = node;
      if (parent) {
        parentById[node.id] = parent.id;
      } else {
        delete parentById[node.id];
      }
      buildMaps(children(node), node);
    });
  }
  buildMaps(forest, null);

  function countDescendants(node) {
    var total = 0;
    children(node).forEach(function(child) { total += 1 + countDescendants(child); });
    return total;
  }

  function pathTo(id) {
    var path = [];
    var seen = Object.create(null);
    var cur = id;
    while (cur !== undefined && !seen[cur]) {
      seen[cur] = true;
      path.unshift(cur);
      cur = parentById[cur];
    }
    return path;
  }

  // ===== State =====
  var expanded = Object.create(null);
  var selectedId = null;
  var filter = null;

  function isExpanded(id) {
    return filter ? !!filter.expanded[id] : !!expanded[id];
  }

  // ===== Tree rendering =====
  var treeEl = document.getElementById("tree");
  var noResults = document.getElementById("no-results");

  function renderNodes(nodes) {
    var ul = document.createElement("ul");
    ul.setAttribute("role", "group");
    nodes.forEach(function(node) {
      var li = document.createElement("li");
      li.className = "tree-node";
      li.setAttribute("role", "treeitem");
      li.setAttribute("data-id", node.id);

      var row = document.createElement("div");
      row.className = "tree-row";

      var toggle = document.createElement("button");
      toggle.className = "tree-toggle" + (children(node).length ? "" : " leaf");
      toggle.setAttribute("aria-label", "Toggle");
      toggle.textContent = "▶";
      toggle.addEventListener("click", function(e) {
        e.stopPropagation();
        toggleNode(node.id);
      });

      var code = document.createElement("span");
      code.className = "tree-code";
      code.textContent = node.displayId;

      var name = document.createElement("span");
      name.className = "tree-name";
      name.textContent = node.name;

      row.appendChild(toggle);
      row.appendChild(code);
      row.appendChild(name);
      row.addEventListener("click", function() { selectNode(node.id); });
      li.appendChild(row);

      if (children(node).length) {
        li.appendChild(renderNodes(children(node)));
      }
      elementById[node.id] = li;
      ul.appendChild(li);
    });
    return ul;
  }

  if (treeEl) {
    treeEl.appendChild(renderNodes(forest));
  }

  function refreshTree() {
    Object.keys(elementById).forEach(function(id) {
      var li = elementById[id];
      li.classList.toggle("expanded", isExpanded(id));
      li.classList.toggle("selected", id === selectedId);
      li.classList.toggle("match", !!(filter && filter.matches[id]));
      li.classList.toggle("filtered-out", !!(filter && !filter.visible[id]));
      li.setAttribute("aria-expanded", isExpanded(id) ? "true" : "false");
    });
    if (noResults) {
      noResults.hidden = !(filter && Object.keys(filter.matches).length === 0);
    }
  }

  // ===== Toggle =====
  function toggleNode(id, force) {
    if (!(id in nodeById)) return;
    var next = typeof force === "boolean" ? force : !isExpanded(id);
    expanded[id] = next;
    if (filter) filter.expanded[id] = next;
    refreshTree();
  }

  // ===== Select =====
  function el(id) { return document.getElementById(id); }

  function selectNode(id) {
    if (!(id in nodeById)) return;
    var node = nodeById[id];
    selectedId = id;

    var path = pathTo(id);
    path.slice(0, -1).forEach(function(anc) {
      expanded[anc] = true;
      if (filter) filter.expanded[anc] = true;
    });
    refreshTree();

    renderDetail(node, path);
    renderBreadcrumb(path);
    renderHierarchy(path);
    renderChildren(node);

    var li = elementById[id];
    if (li && li.firstChild && li.firstChild.scrollIntoView) {
      li.firstChild.scrollIntoView({ block: "nearest" });
    }
  }

  function renderDetail(node, path) {
    el("empty-state").hidden = true;
    el("detail-body").hidden = false;
    el("detail-code").textContent = node.displayId;
    el("detail-name").textContent = node.name;
    var desc = (node.description || "").trim();
    el("detail-description").textContent = desc || NO_DESCRIPTION;
    el("stat-children").textContent = children(node).length;
    el("stat-descendants").textContent = countDescendants(node);
    el("stat-level").textContent = path.length;
  }

  function renderBreadcrumb(path) {
    var nav = el("breadcrumb");
    nav.textContent = "";
    path.forEach(function(id, i) {
      if (i > 0) {
        var sep = document.createElement("span");
        sep.className = "separator";
        sep.textContent = "›";
        nav.appendChild(sep);
      }
      var a = document.createElement("a");
      a.textContent = nodeById[id].displayId;
      a.title = nodeById[id].name;
      a.addEventListener("click", function() { selectNode(id); });
      nav.appendChild(a);
    });
  }

  function renderHierarchy(path) {
    var list = el("hierarchy");
    list.textContent = "";
    path.forEach(function(id, i) {
      var node = nodeById[id];
      var li = document.createElement("li");
      var current = i === path.length - 1;
      if (current) {
        li.className = "current";
      } else {
        li.addEventListener("click", function() { selectNode(id); });
      }
      var level = document.createElement("span");
      level.className = "hierarchy-level";
      level.textContent = "Level " + (i + 1);
      var code = document.createElement("span");
      code.className = "tree-code";
      code.textContent = node.displayId;
      var name = document.createElement("span");
      name.textContent = node.name;
      li.appendChild(level);
      li.appendChild(code);
      li.appendChild(name);
      list.appendChild(li);
    });
    el("hierarchy-panel").hidden = path.length === 0;
  }

  function renderChildren(node) {
    var grid = el("children");
    grid.textContent = "";
    children(node).forEach(function(child) {
      var card = document.createElement("button");
      card.className = "child-card";
      var code = document.createElement("span");
      code.className = "child-code";
      code.textContent = child.displayId;
      var name = document.createElement("span");
      name.className = "child-name";
      name.textContent = child.name;
      card.appendChild(code);
      card.appendChild(name);
      if (children(child).length) {
        var badge = document.createElement("span");
        badge.className = "badge";
        badge.textContent = children(child).length;
        card.appendChild(badge);
      }
      card.addEventListener("click", function() { selectNode(child.id); });
      grid.appendChild(card);
    });
    el("children-panel").hidden = children(node).length === 0;
  }

  // ===== Search =====
  var searchInput = el("search-input");
  var pending = null;

  function applySearch(term) {
    var needle = (term || "").trim().toLowerCase();
    if (needle === "") {
      filter = null;
      refreshTree();
      return;
    }
    var f = { term: needle, matches: Object.create(null), visible: Object.create(null), expanded: Object.create(null) };
    Object.keys(nodeById).forEach(function(id) {
      var node = nodeById[id];
      if ((node.displayId || "").toLowerCase().indexOf(needle) === -1 &&
          (node.name || "").toLowerCase().indexOf(needle) === -1) {
        return;
      }
      f.matches[id] = true;
      pathTo(id).forEach(function(anc) { f.visible[anc] = true; });
    });
    Object.keys(f.visible).forEach(function(id) { f.expanded[id] = true; });
    filter = f;
    refreshTree();
  }

  function scheduleSearch(term) {
    if (pending !== null) clearTimeout(pending);
    pending = setTimeout(function() {
      pending = null;
      applySearch(term);
    }, SEARCH_DELAY);
  }

  function clearSearch() {
    if (pending !== null) {
      clearTimeout(pending);
      pending = null;
    }
    if (searchInput) searchInput.value = "";
    applySearch("");
  }

  if (searchInput) {
    searchInput.addEventListener("input", function() { scheduleSearch(this.value); });
  }

  // ===== Theme =====
  var themeToggle = el("theme-toggle");

  function getStoredTheme() {
    try { return localStorage.getItem(THEME_KEY); } catch(e) { return null; }
  }

  function setTheme(theme) {
    if (theme !== "dark") theme = "light";
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem(THEME_KEY, theme); } catch(e) {}
  }

  var stored = getStoredTheme();
  html.setAttribute("data-theme", stored === "dark" ? "dark" : "light");

  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      var current = html.getAttribute("data-theme") || "light";
      setTheme(current === "dark" ? "light" : "dark");
    });
  }

  // ===== Keyboard =====
  document.addEventListener("keydown", function(e) {
    if (!searchInput) return;
    if (e.key === "/" && document.activeElement !== searchInput) {
      e.preventDefault();
      searchInput.focus();
    } else if (e.key === "Escape") {
      clearSearch();
      searchInput.blur();
    }
  });

  refreshTree();

  window.classview = {
    select: selectNode,
    toggle: toggleNode,
    search: applySearch,
    clearSearch: clearSearch,
    setTheme: setTheme,
    nodeById: nodeById,
    parentById: parentById,
    selected: function() { return selectedId; },
    isExpanded: isExpanded,
    isVisible: function(id) { return !filter || !!filter.visible[id]; },
    matches: function() { return filter ? Object.keys(filter.matches) : []; }
  };
})();
`

// liveReloadScript reconnects to the preview server and reloads the page
// whenever a regeneration is announced.
const liveReloadScript = `<script>
(function() {
  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/livereload");
    ws.onmessage = function(e) {
      try {
        if (JSON.parse(e.data).type === "reload") location.reload();
      } catch(err) {}
    };
    ws.onclose = function() { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>
`
