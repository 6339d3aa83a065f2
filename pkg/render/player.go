package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// PlayerPage renders a self-contained HTML player with the animation
// embedded, viewable without the dashboard server.
func PlayerPage(anim *model.Animation) (string, error) {
	raw, err := json.Marshal(anim)
	if err != nil {
		return "", fmt.Errorf("encoding animation: %w", err)
	}
	var buf bytes.Buffer
	if err := playerTemplate.Execute(&buf, map[string]any{
		"Animation": string(raw),
	}); err != nil {
		return "", fmt.Errorf("rendering player page: %w", err)
	}
	return buf.String(), nil
}

var playerTemplate = template.Must(template.New("player").Parse(`<!DOCTYPE html>
<html>
<head><title>Race Replay</title>
<style>
body { background:black; color:white; font-family:monospace; margin:1em; }
#board { white-space:pre; position:absolute; right:2em; top:4em; }
#telemetry { white-space:pre; position:absolute; left:2em; bottom:4em; }
button { font-size:1em; }
</style></head>
<body>
<h2 style="color:#ff1801">Race Replay</h2>
<div>
<button id="play">&#9654;</button>
<button id="pause">&#9208;</button>
<input id="seek" type="range" min="0" max="0" value="0" style="width:40em">
<span id="clock"></span>
</div>
<canvas id="view" width="900" height="700"></canvas>
<div id="board"></div>
<div id="telemetry"></div>
<script>
const anim = {{.Animation}};
let idx = 0, timer = null;
const cv = document.getElementById('view'), ctx = cv.getContext('2d');
function world2px(x, y) {
  const v = anim.viewport;
  return [
    (x - v.xMin) / (v.xMax - v.xMin) * cv.width,
    cv.height - (y - v.yMin) / (v.yMax - v.yMin) * cv.height,
  ];
}
function draw() {
  ctx.clearRect(0, 0, cv.width, cv.height);
  ctx.strokeStyle = 'rgba(255,255,255,0.5)';
  ctx.lineWidth = 4;
  ctx.beginPath();
  anim.track.x.forEach((x, i) => {
    const [px, py] = world2px(x, anim.track.y[i]);
    i === 0 ? ctx.moveTo(px, py) : ctx.lineTo(px, py);
  });
  ctx.stroke();
  const frame = anim.frames[idx];
  (frame.cars || []).forEach(c => {
    const [px, py] = world2px(c.x, c.y);
    ctx.fillStyle = c.color || '#ff1801';
    ctx.beginPath(); ctx.arc(px, py, 6, 0, 2 * Math.PI); ctx.fill();
    ctx.fillStyle = 'white'; ctx.fillText(c.abbrev, px + 8, py);
  });
  let board = 'Leaderboard\n';
  (frame.leaderboard || []).slice(0, 10).forEach(e => {
    board += e.rank + '. ' + e.abbrev +
      (e.rank > 1 ? '  +' + e.gapSecs.toFixed(1) + 's' : '') + '\n';
  });
  document.getElementById('board').textContent = board;
  const f = frame.focus;
  document.getElementById('telemetry').textContent = f ?
    'Driver: ' + f.carId + '\nSpeed: ' + f.speed.toFixed(0) + ' km/h\nGear: ' +
    f.gear + '\nDRS: ' + (f.drsOpen ? 'ON' : 'OFF') + '\nLap: ' + f.lapNumber : '';
  document.getElementById('clock').textContent = frame.timeSecs.toFixed(1) + 's';
  document.getElementById('seek').value = idx;
}
function seek(i) { idx = Math.max(0, Math.min(i, anim.frames.length - 1)); draw(); }
function pause() { if (timer) { clearInterval(timer); timer = null; } }
function play() {
  if (timer) return;
  timer = setInterval(() => {
    if (idx >= anim.frames.length - 1) { pause(); return; }
    seek(idx + 1);
  }, anim.frameDurationMs);
}
document.getElementById('play').onclick = play;
document.getElementById('pause').onclick = pause;
document.getElementById('seek').oninput = e => { pause(); seek(+e.target.value); };
document.getElementById('seek').max = anim.frames.length - 1;
seek(0);
</script>
</body>
</html>`))
