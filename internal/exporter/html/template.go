package html

// ReportTemplate renders the combined results, one table per group
const ReportTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.5;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #f6e51c 0%, #d4c514 100%);
            color: #2a2a2a;
            padding: 30px 20px;
            margin-bottom: 30px;
            border-radius: 8px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        header h1 {
            font-size: 2em;
            margin-bottom: 8px;
        }

        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 15px;
            margin-bottom: 30px;
        }

        .stat-card {
            background: white;
            padding: 15px;
            border-radius: 6px;
            border-left: 4px solid #d4c514;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .stat-card .label {
            font-size: 0.9em;
            color: #6c757d;
        }

        .stat-card .value {
            font-size: 1.6em;
            font-weight: bold;
        }

        .group {
            background: white;
            margin-bottom: 24px;
            border-radius: 8px;
            overflow-x: auto;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .group h2 {
            padding: 14px 20px;
            background: #f8f9fa;
            border-bottom: 1px solid #e9ecef;
            font-size: 1.2em;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.9em;
        }

        th {
            background: #e0e0e0;
            text-align: left;
            padding: 8px 10px;
            white-space: nowrap;
        }

        td {
            padding: 8px 10px;
            border-top: 1px solid #e9ecef;
            vertical-align: top;
        }

        td a {
            color: #0563c1;
            word-break: break-all;
        }

        .empty {
            padding: 20px;
            color: #6c757d;
        }

        footer {
            text-align: center;
            color: #6c757d;
            font-size: 0.85em;
            margin-top: 30px;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.Title}}</h1>
            <p>Generado el {{.GeneratedAt}} · Sesión {{.SessionID}}</p>
        </header>

        <div class="stats">
            <div class="stat-card">
                <div class="label">Grupos procesados</div>
                <div class="value">{{len .Groups}}</div>
            </div>
            <div class="stat-card">
                <div class="label">Filas</div>
                <div class="value">{{.TotalRows}}</div>
            </div>
        </div>

        {{range .Groups}}
        <div class="group">
            <h2>{{.Label}}</h2>
            {{if .Rows}}
            <table>
                <thead>
                    <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
                </thead>
                <tbody>
                    {{range .Rows}}
                    <tr>{{range .}}<td>{{if .Link}}<a href="{{.Text}}" target="_blank" rel="noopener">{{.Text}}</a>{{else}}{{.Text}}{{end}}</td>{{end}}</tr>
                    {{end}}
                </tbody>
            </table>
            {{else}}
            <div class="empty">Sin filas</div>
            {{end}}
        </div>
        {{else}}
        <div class="empty">No hay grupos procesados.</div>
        {{end}}

        <footer>
            <p>Generado por <strong>comparables</strong></p>
        </footer>
    </div>
</body>
</html>
`
