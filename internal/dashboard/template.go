package dashboard

import "html/template"

// dashboardTemplate renders the whole artifact as one self-contained page.
// Charts come from the Chart.js CDN; everything else is inline so the file
// can be served or opened directly.
var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="es" class="dark">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Mayordomo - Dashboard</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
body { font-family: -apple-system, 'Segoe UI', sans-serif; background: #0f172a; color: #e2e8f0; margin: 0; }
.wrap { max-width: 1100px; margin: 0 auto; padding: 2rem 1rem; }
header { display: flex; justify-content: space-between; align-items: baseline; margin-bottom: 2rem; }
h1 { font-size: 1.8rem; margin: 0; background: linear-gradient(to right, #60a5fa, #a855f7); -webkit-background-clip: text; -webkit-text-fill-color: transparent; }
.updated { color: #94a3b8; font-size: 0.85rem; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 1rem; margin-bottom: 2rem; }
.card { background: rgba(30, 41, 59, 0.7); border: 1px solid rgba(255,255,255,0.08); border-radius: 1rem; padding: 1.25rem; }
.card .label { color: #94a3b8; font-size: 0.75rem; text-transform: uppercase; letter-spacing: 0.08em; }
.card .value { font-size: 1.8rem; font-weight: 700; margin-top: 0.25rem; }
.charts { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; margin-bottom: 2rem; }
@media (max-width: 720px) { .charts { grid-template-columns: 1fr; } }
h2 { font-size: 1rem; color: #94a3b8; margin: 0 0 0.75rem; }
ul { list-style: none; margin: 0; padding: 0; }
li { padding: 0.5rem 0; border-bottom: 1px solid rgba(255,255,255,0.06); }
.deadline { color: #f59e0b; font-size: 0.8rem; margin-left: 0.5rem; }
.date { color: #64748b; font-size: 0.8rem; margin-left: 0.5rem; }
</style>
</head>
<body>
<div class="wrap">
<header>
<h1>Mayordomo</h1>
<span class="updated">Actualizado {{.GeneratedAt}}</span>
</header>

<div class="grid">
<div class="card"><div class="label">Total gastado</div><div class="value">${{.TotalSpent}}</div></div>
<div class="card"><div class="label">Tareas pendientes</div><div class="value">{{.PendingCount}}</div></div>
<div class="card"><div class="label">Notas</div><div class="value">{{.NoteCount}}</div></div>
</div>

<div class="charts">
<div class="card">
<h2>Gastos por categoría</h2>
<canvas id="catChart"></canvas>
</div>
<div class="card">
<h2>Gastos diarios (últimos 7 días)</h2>
<canvas id="dailyChart"></canvas>
</div>
</div>

<div class="charts">
<div class="card">
<h2>Tareas pendientes</h2>
<ul>
{{range .PendingTasks}}<li>{{.Description}}{{if .Deadline}}<span class="deadline">Vence: {{.Deadline}}</span>{{end}}</li>
{{else}}<li>Sin tareas pendientes 🎉</li>
{{end}}</ul>
</div>
<div class="card">
<h2>Notas recientes</h2>
<ul>
{{range .RecentNotes}}<li>{{.Content}}<span class="date">{{.Date}}</span></li>
{{else}}<li>Sin notas todavía</li>
{{end}}</ul>
</div>
</div>
</div>

<script>
new Chart(document.getElementById('catChart'), {
  type: 'doughnut',
  data: {
    labels: [{{range .Categories}}'{{.Label}}',{{end}}],
    datasets: [{
      data: [{{range .Categories}}{{.Raw}},{{end}}],
      backgroundColor: ['#60a5fa', '#a855f7', '#34d399', '#f59e0b', '#f87171']
    }]
  },
  options: { plugins: { legend: { labels: { color: '#e2e8f0' } } } }
});
new Chart(document.getElementById('dailyChart'), {
  type: 'line',
  data: {
    labels: [{{range .Daily}}'{{.Date}}',{{end}}],
    datasets: [{
      label: 'Gasto',
      data: [{{range .Daily}}{{.Raw}},{{end}}],
      borderColor: '#60a5fa',
      tension: 0.3,
      fill: false
    }]
  },
  options: { scales: { x: { ticks: { color: '#94a3b8' } }, y: { ticks: { color: '#94a3b8' } } }, plugins: { legend: { labels: { color: '#e2e8f0' } } } }
});
</script>
</body>
</html>
`))
