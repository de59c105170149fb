package ui

// themeInitScript runs in <head> so the stored colour mode applies before paint.
const themeInitScript = `(function(){
  var root=document.documentElement;
  var media=window.matchMedia('(prefers-color-scheme: dark)');
  function normalize(mode){
    return mode==='light'||mode==='dark'?mode:'auto';
  }
  function apply(mode){
    var selected=normalize(mode);
    var resolved=selected==='auto'?(media.matches?'dark':'light'):selected;
    root.setAttribute('data-color-mode',selected);
    root.setAttribute('data-theme',resolved);
  }
  var stored='auto';
  try {
    stored=normalize(localStorage.getItem('bazi-ui-theme')||'auto');
  } catch (_) {}
  apply(stored);
  window.__baziThemeApply=apply;
})();`

const themeToggleScript = `(function(){
  var root=document.documentElement;
  var toggle=document.getElementById('theme-toggle');
  if(!toggle||!window.__baziThemeApply){ return; }
  toggle.addEventListener('click', function(){
    var next=root.getAttribute('data-theme')==='dark'?'light':'dark';
    window.__baziThemeApply(next);
    try { localStorage.setItem('bazi-ui-theme', next); } catch (_) {}
  });
})();`

const stylesheet = `
:root{--fg:#1f2328;--muted:#59636e;--bg:#fff;--card:#f6f8fa;--border:#d1d9e0;--accent:#9a3412;
  --wood:#15803d;--fire:#dc2626;--earth:#a16207;--metal:#6b7280;--water:#1d4ed8}
[data-theme=dark]{--fg:#e6edf3;--muted:#9198a1;--bg:#0d1117;--card:#151b23;--border:#3d444d;--accent:#fb923c}
body{margin:0;font-family:Inter,"PingFang SC","Noto Sans SC",sans-serif;color:var(--fg);background:var(--bg)}
.layout{max-width:64rem;margin:0 auto;padding:1.5rem}
.topbar{display:flex;justify-content:space-between;align-items:center;gap:1rem}
.page-title{font-size:1.5rem;margin:0}
.muted{color:var(--muted);font-size:.875rem}
.card{background:var(--card);border:1px solid var(--border);border-radius:.5rem;padding:1rem;margin-top:1rem}
.table-wrap{overflow-x:auto}
table{border-collapse:collapse;width:100%}
th,td{border-bottom:1px solid var(--border);padding:.4rem .6rem;text-align:center}
th{font-weight:600;color:var(--muted)}
.pillar-char{font-size:1.75rem;font-weight:700}
.el-木{color:var(--wood)}.el-火{color:var(--fire)}.el-土{color:var(--earth)}.el-金{color:var(--metal)}.el-水{color:var(--water)}
.current{outline:2px solid var(--accent);border-radius:.25rem}
.facts{display:grid;grid-template-columns:repeat(auto-fill,minmax(12rem,1fr));gap:.5rem}
form.birth{display:flex;flex-wrap:wrap;gap:.5rem;align-items:end}
form.birth label{display:flex;flex-direction:column;font-size:.8rem;color:var(--muted)}
input,select,button{font:inherit;padding:.3rem .5rem}
`
