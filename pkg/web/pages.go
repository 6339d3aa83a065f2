package web

import "net/http"

func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (ws *WebServer) handleReplayPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(replayHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>F1 Telemetry Dashboard</title>
<style>
body { background:#0e1117; color:#fafafa; font-family:sans-serif; margin:2em; }
h1 { color:#ff1801; }
a { color:#9ca3af; }
li { margin:0.4em 0; }
</style></head>
<body>
<h1>F1 Telemetry Dashboard</h1>
<ul>
<li><a href="/tables/schedule">Schedule</a> | <a href="/tables/results">Results</a> | <a href="/tables/standings">Standings</a></li>
<li><a href="/charts/speed">Speed Trace</a> | <a href="/charts/gear">Gear Trace</a> | <a href="/charts/drs">DRS Trace</a></li>
<li><a href="/charts/laptimes">Lap Times</a> | <a href="/charts/laptimes?by=team">Lap Times by Team</a></li>
<li><a href="/charts/trackmap">Track Map</a></li>
<li><a href="/replay">Race Replay</a></li>
</ul>
</body>
</html>`

// replayHTML is a minimal scrub player on top of the animation JSON. The
// heavy lifting (resampling, frames, leaderboard) happens server side; the
// page only draws the current frame and drives play/pause/seek.
const replayHTML = `<!DOCTYPE html>
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
lap <input id="lap" size="3" value="0"> focus <input id="focus" size="4">
<button id="load">Load</button>
<button id="play">&#9654;</button>
<button id="pause">&#9208;</button>
<input id="seek" type="range" min="0" max="0" value="0" style="width:40em">
<span id="clock"></span>
</div>
<canvas id="view" width="900" height="700"></canvas>
<div id="board"></div>
<div id="telemetry"></div>
<script>
let anim = null, idx = 0, timer = null;
const cv = document.getElementById('view'), ctx = cv.getContext('2d');
function world2px(x, y) {
  const v = anim.viewport;
  return [
    (x - v.xMin) / (v.xMax - v.xMin) * cv.width,
    cv.height - (y - v.yMin) / (v.yMax - v.yMin) * cv.height,
  ];
}
function draw() {
  if (!anim) return;
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
  if (!anim || timer) return;
  timer = setInterval(() => {
    if (idx >= anim.frames.length - 1) { pause(); return; }
    seek(idx + 1);
  }, anim.frameDurationMs);
}
document.getElementById('load').onclick = async () => {
  pause();
  const lap = document.getElementById('lap').value;
  const focus = document.getElementById('focus').value;
  const resp = await fetch('/api/replay?lap=' + lap + '&focus=' + focus);
  if (!resp.ok) { alert((await resp.json()).error); return; }
  anim = await resp.json();
  document.getElementById('seek').max = anim.frames.length - 1;
  seek(0);
};
document.getElementById('play').onclick = play;
document.getElementById('pause').onclick = pause;
document.getElementById('seek').oninput = e => { pause(); seek(+e.target.value); };
</script>
</body>
</html>`
