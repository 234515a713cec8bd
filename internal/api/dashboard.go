package api

// logsDashboardHTML is the self-contained activity log page served at /logs.
const logsDashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AI Voice Bot - Logs</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        .container { max-width: 1400px; margin: 0 auto; background: white; padding: 20px; border-radius: 8px; }
        .header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 20px; border-bottom: 2px solid #e0e0e0; padding-bottom: 20px; }
        .stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 16px; margin-bottom: 24px; }
        .stat-card { background: #f8f9fa; padding: 16px; border-radius: 8px; border-left: 4px solid #007bff; }
        .stat-number { font-size: 2em; font-weight: bold; color: #007bff; }
        .stat-label { color: #666; margin-top: 4px; }
        .btn { background: #007bff; color: white; padding: 8px 16px; border: none; border-radius: 5px; cursor: pointer; margin-right: 8px; text-decoration: none; }
        .btn.warning { background: #ffc107; color: #212529; }
        .logs-table { width: 100%; border-collapse: collapse; margin-top: 16px; }
        .logs-table th, .logs-table td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
        .logs-table th { background: #f8f9fa; }
        .status-success { color: #155724; }
        .status-error { color: #721c24; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>AI Voice Bot - Activity Logs</h1>
            <div>
                <a href="/" class="btn">Back to Chat</a>
                <button class="btn" onclick="refreshLogs()">Refresh</button>
                <button class="btn" onclick="window.open('/logs/export', '_blank')">Export CSV</button>
                <button class="btn warning" onclick="clearLogs()">Clear Logs</button>
            </div>
        </div>
        <div class="stats">
            <div class="stat-card"><div class="stat-number" id="totalMessages">-</div><div class="stat-label">Total Messages</div></div>
            <div class="stat-card"><div class="stat-number" id="uniqueSessions">-</div><div class="stat-label">Unique Sessions</div></div>
            <div class="stat-card"><div class="stat-number" id="avgResponseTime">-</div><div class="stat-label">Avg Response Time (ms)</div></div>
            <div class="stat-card"><div class="stat-number" id="voiceRequests">-</div><div class="stat-label">Voice Requests</div></div>
            <div class="stat-card"><div class="stat-number" id="successRate">-</div><div class="stat-label">Success Rate (%)</div></div>
            <div class="stat-card"><div class="stat-number" id="errors">-</div><div class="stat-label">Errors</div></div>
        </div>
        <table class="logs-table">
            <thead>
                <tr>
                    <th>Timestamp</th><th>Type</th><th>Session</th><th>User Message</th>
                    <th>AI Response</th><th>Latency</th><th>Voice</th><th>Status</th><th>IP</th>
                </tr>
            </thead>
            <tbody id="logsTableBody"><tr><td colspan="9">Loading logs...</td></tr></tbody>
        </table>
    </div>
    <script>
        async function loadStats() {
            const stats = await (await fetch('/logs/summary')).json();
            document.getElementById('totalMessages').textContent = stats.total_messages || 0;
            document.getElementById('uniqueSessions').textContent = stats.unique_sessions || 0;
            document.getElementById('avgResponseTime').textContent = stats.average_response_time_ms || 0;
            document.getElementById('voiceRequests').textContent = stats.voice_requests || 0;
            document.getElementById('successRate').textContent = stats.success_rate || 0;
            document.getElementById('errors').textContent = stats.errors || 0;
        }
        async function loadLogs() {
            const logs = await (await fetch('/logs/recent')).json();
            const tbody = document.getElementById('logsTableBody');
            tbody.innerHTML = '';
            if (!logs.length) {
                tbody.innerHTML = '<tr><td colspan="9">No logs found</td></tr>';
                return;
            }
            logs.forEach(log => {
                const row = document.createElement('tr');
                row.innerHTML =
                    '<td>' + new Date(log.timestamp).toLocaleString() + '</td>' +
                    '<td>' + (log.message_type || '-') + '</td>' +
                    '<td>' + (log.session_id || '').substring(0, 8) + '</td>' +
                    '<td>' + (log.user_message || '-') + '</td>' +
                    '<td>' + (log.assistant_response || '-') + '</td>' +
                    '<td>' + (log.response_time_ms || '-') + 'ms</td>' +
                    '<td>' + (log.voice_generated === 'True' ? (log.voice_voice_name || 'Kore') : '-') + '</td>' +
                    '<td class="status-' + log.processing_status + '">' + (log.processing_status || '-') + '</td>' +
                    '<td>' + (log.user_ip || '-') + '</td>';
                tbody.appendChild(row);
            });
        }
        function refreshLogs() { loadStats(); loadLogs(); }
        async function clearLogs() {
            if (!confirm('Clear all logs?')) return;
            await fetch('/logs/clear', { method: 'POST' });
            refreshLogs();
        }
        document.addEventListener('DOMContentLoaded', () => {
            refreshLogs();
            setInterval(refreshLogs, 30000);
        });
    </script>
</body>
</html>`
