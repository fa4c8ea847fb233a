package health

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// RenderDashboardHTML returns the status page served at GET /. It embeds the
// current health payload and polls /health/json a few times afterwards.
func RenderDashboardHTML(health CollectResult) string {
	b, _ := json.Marshal(health)
	// Embedded in a JS template literal: escape \ ` $
	payload := strings.NewReplacer("\\", "\\\\", "`", "\\`", "$", "\\$").Replace(string(b))

	lastMethod, lastPath := "-", "-"
	if m, ok := health.Traffic.LastRequest.(map[string]interface{}); ok {
		if v, ok := m["method"].(string); ok {
			lastMethod = v
		}
		if v, ok := m["path"].(string); ok {
			lastPath = v
		}
	}

	headline := "All Systems Operational"
	if health.Status != "ok" {
		headline = "System Issues Detected"
	}

	var deps strings.Builder
	labels := map[string]string{"database": "Database", "redis": "Redis Cache"}
	for _, name := range []string{"database", "redis"} {
		d := health.Dependencies[name]
		class := "ok"
		if d.Status != StatusConnected && d.Status != StatusDisabled {
			class = "err"
		}
		ping := "-"
		if d.PingMs != nil {
			ping = fmt.Sprintf("%d ms", *d.PingMs)
		}
		fmt.Fprintf(&deps, `<div class="row"><span>%s</span><span id="pill-%s" class="pill %s">%s · <span id="ping-%s">%s</span></span></div>`,
			labels[name], name, class, d.Status, name, ping)
	}

	return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Realty API · Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    :root { --brand: #1f5f8b; --ink: #16263a; --bg: #f5f7fa; --muted: #64748b; }
    body { background: var(--bg); color: var(--ink); font-family: system-ui, sans-serif; margin: 0; padding: 48px 16px; }
    .container { max-width: 960px; margin: 0 auto; }
    h1 { font-size: 44px; margin: 0 0 8px; letter-spacing: -1px; }
    .subtext { color: var(--muted); font-weight: 600; margin-bottom: 28px; }
    .card { background: #fff; border-radius: 20px; box-shadow: 0 20px 60px -20px rgba(31, 95, 139, 0.25); overflow: hidden; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); }
    .col { padding: 32px; border-right: 1px solid #eef2f6; }
    .col:last-child { border-right: none; }
    .label { text-transform: uppercase; font-size: 11px; font-weight: 800; letter-spacing: 2px; color: #94a3b8; margin-bottom: 18px; }
    .big { font-size: 36px; font-weight: 800; margin-bottom: 10px; }
    .row { display: flex; justify-content: space-between; padding: 6px 0; font-size: 14px; font-weight: 600; }
    .pill { padding: 3px 10px; border-radius: 8px; font-size: 11px; font-weight: 800; }
    .ok { background: rgba(31, 95, 139, 0.1); color: var(--brand); }
    .err { background: rgba(239, 68, 68, 0.1); color: #dc2626; }
    .footer { background: #f8fafc; padding: 14px 32px; display: flex; justify-content: space-between; font-family: monospace; font-size: 13px; }
    .actions { margin-top: 20px; display: flex; gap: 12px; align-items: center; color: var(--muted); font-weight: 700; }
    button { background: var(--brand); color: #fff; border: none; padding: 8px 16px; border-radius: 8px; cursor: pointer; font-weight: 800; }
    #errors { margin-top: 20px; font-size: 13px; }
    .error-item { border-bottom: 1px solid #eef2f6; padding: 10px 0; }
    @media (max-width: 800px) { .grid { grid-template-columns: 1fr; } .col { border-right: none; } }
  </style>
</head>
<body>
  <div class="container">
    <h1 id="headline">` + headline + `</h1>
    <p class="subtext">Request traffic, runtime and dependencies of the property API.</p>
    <div class="card">
      <div class="grid">
        <div class="col">
          <div class="label">Traffic</div>
          <div class="big" id="total-req">` + fmt.Sprint(health.Traffic.TotalRequests) + `</div>
          <div class="row"><span>Successful</span><span id="success-count">` + fmt.Sprint(health.Traffic.SuccessCount) + `</span></div>
          <div class="row"><span>Failed</span><span id="failed-count">` + fmt.Sprint(health.Traffic.FailedCount) + `</span></div>
          <div class="row"><span>Success Rate</span><span id="success-rate">` + health.Traffic.SuccessRate + `%</span></div>
          <div class="row"><span>Avg Latency</span><span id="avg-time">` + health.Traffic.AvgResponseTime + `ms</span></div>
        </div>
        <div class="col">
          <div class="label">Runtime</div>
          <div class="big" id="uptime">` + fmt.Sprint(health.Runtime.UptimeSeconds) + `s</div>
          <div class="row"><span>Heap In Use</span><span id="mem-heap">` + fmt.Sprint(health.Runtime.Memory.HeapUsed) + ` MB</span></div>
          <div class="row"><span>Goroutines</span><span id="goroutines">` + fmt.Sprint(health.Runtime.Goroutines) + `</span></div>
          <div class="row"><span>Go</span><span>` + health.Runtime.GoVersion + `</span></div>
          <div class="row"><span>Platform</span><span>` + health.Runtime.Platform + `</span></div>
        </div>
        <div class="col">
          <div class="label">Dependencies</div>
          ` + deps.String() + `
        </div>
      </div>
      <div class="footer">
        <span>LAST REQUEST <b id="req-method">` + html.EscapeString(lastMethod) + `</b></span>
        <span id="req-path">` + html.EscapeString(lastPath) + `</span>
      </div>
    </div>
    <div class="actions">
      <button onclick="showErrors()">View Error Log</button>
      <span id="updates">Live updates: <span id="count">3</span> left</span>
    </div>
    <div id="errors"></div>
  </div>
  <script>
    let left = 3;
    const text = (id, v) => { const el = document.getElementById(id); if (el) el.innerText = v; };
    const fmt = (s) => { const h = Math.floor(s / 3600); const m = Math.floor((s % 3600) / 60); return h + 'h ' + m + 'm ' + Math.floor(s % 60) + 's'; };
    const render = (d) => {
      text('headline', d.status === 'ok' ? 'All Systems Operational' : 'System Issues Detected');
      text('total-req', d.traffic.totalRequests);
      text('success-count', d.traffic.successCount);
      text('failed-count', d.traffic.failedCount);
      text('success-rate', d.traffic.successRate + '%');
      text('avg-time', d.traffic.avgResponseTime + 'ms');
      text('uptime', fmt(d.runtime.uptimeSeconds));
      text('mem-heap', d.runtime.memory.heapUsed + ' MB');
      text('goroutines', d.runtime.goroutines);
      if (d.traffic.lastRequest) { text('req-method', d.traffic.lastRequest.method); text('req-path', d.traffic.lastRequest.path); }
      for (const name of ['database', 'redis']) {
        const dep = d.dependencies[name]; const pill = document.getElementById('pill-' + name);
        if (!dep || !pill) continue;
        pill.className = 'pill ' + (dep.status === 'connected' || dep.status === 'disabled' ? 'ok' : 'err');
        text('ping-' + name, dep.pingMs != null ? dep.pingMs + ' ms' : '-');
      }
    };
    async function tick() { if (left <= 0) return; try { const r = await fetch('/health/json'); render(await r.json()); } catch (e) {} left--; text('count', left); }
    async function showErrors() {
      const box = document.getElementById('errors'); box.innerText = 'Loading...';
      try {
        const errs = await (await fetch('/health/errors')).json();
        box.innerHTML = '';
        if (errs.length === 0) { box.innerText = 'No internal errors recorded.'; return; }
        for (const e of errs) { const div = document.createElement('div'); div.className = 'error-item'; div.innerText = new Date(e.time).toLocaleString() + '  ' + (e.method || '') + ' ' + (e.path || '') + '  ' + (e.message || ''); box.appendChild(div); }
      } catch (e) { box.innerText = 'Error loading logs.'; }
    }
    render(JSON.parse(` + "`" + payload + "`" + `));
    setInterval(tick, 10000);
  </script>
</body>
</html>`
}
