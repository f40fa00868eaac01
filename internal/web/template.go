package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/washerd/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"stateClass": func(s string) string {
		switch s {
		case "IDLE":
			return "idle"
		case "ERROR":
			return "error"
		case "":
			return "unknown"
		default:
			return "running"
		}
	},
	"stateOrUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
	"onOff": func(on bool) string {
		if on {
			return "ON"
		}
		return "OFF"
	},
	"wallclock": func(t time.Time) string {
		return t.Format("15:04:05")
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="1">
<title>Washer Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.idle { color: #888; }
.running { color: green; font-weight: bold; }
.error { color: red; font-weight: bold; }
.unknown { color: orange; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Washer Controller</h1>

<table>
<tr><th>Phase</th><td class="{{stateClass (printf "%s" .State)}}">{{stateOrUnknown (printf "%s" .State)}}</td></tr>
<tr><th>Program</th><td>{{.Program}}</td></tr>
<tr><th>Water temperature</th><td>{{printf "%.1f" .Temperature}} &deg;C</td></tr>
<tr><th>Hot valve</th><td class="{{if .Outputs.HotValve}}on{{else}}off{{end}}">{{onOff .Outputs.HotValve}}</td></tr>
<tr><th>Cold valve</th><td class="{{if .Outputs.ColdValve}}on{{else}}off{{end}}">{{onOff .Outputs.ColdValve}}</td></tr>
<tr><th>Motor forward</th><td class="{{if .Outputs.MotorForward}}on{{else}}off{{end}}">{{onOff .Outputs.MotorForward}}</td></tr>
<tr><th>Motor reverse</th><td class="{{if .Outputs.MotorReverse}}on{{else}}off{{end}}">{{onOff .Outputs.MotorReverse}}</td></tr>
</table>

<table>
<tr><th>Time</th><td>{{wallclock .Now}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<table>
<tr><th>Fills</th><td>{{.Counts.Fills}}</td></tr>
<tr><th>Washes</th><td>{{.Counts.Washes}}</td></tr>
<tr><th>Rinses</th><td>{{.Counts.Rinses}}</td></tr>
<tr><th>Spins</th><td>{{.Counts.Spins}}</td></tr>
<tr><th>Errors</th><td>{{.Counts.Errors}}</td></tr>
<tr><th>Completed cycles</th><td>{{.Counts.Cycles}}</td></tr>
</table>

<table>
<tr><th>Poll interval</th><td>{{.Config.PollMs}} ms</td></tr>
<tr><th>Button debounce</th><td>{{.Config.DebounceMs}} ms</td></tr>
<tr><th>Fill duration</th><td>{{.Config.FillMs}} ms</td></tr>
<tr><th>Heartbeat</th><td>{{.Config.HeartbeatMs}} ms</td></tr>
</table>

<p><a href="/index.json">index.json</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}
