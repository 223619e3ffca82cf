package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Subject}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 720px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #463737 0%, #37393b 100%);
      color: #ffffff;
    }

    .title {
      font-size: 22px;
      font-weight: 700;
      margin-bottom: 4px;
    }

    .subtitle {
      font-size: 14px;
      opacity: 0.9;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .symbol {
      font-size: 18px;
      font-weight: 700;
      letter-spacing: 0.05em;
      margin-bottom: 12px;
    }

    .entry {
      background: #f9fafb;
      border-left: 3px solid #463737;
      padding: 12px 16px;
      margin: 0 0 12px 0;
      font-size: 13px;
      color: #374151;
      border-radius: 0 4px 4px 0;
      white-space: pre-wrap;
      font-family: inherit;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="title">Komunikaty {{.Markers}}</div>
      <div class="subtitle">{{len .Blocks}} spółek, od {{.Cutoff.Format "2006-01-02"}}</div>
    </div>

    {{range .Blocks}}
    <div class="section">
      <div class="symbol">{{.Symbol}}</div>
      {{range .Entries}}
      <pre class="entry">{{.}}</pre>
      {{end}}
    </div>
    {{end}}

    <div class="footer">
      Wygenerowano {{.Generated.Format "2006-01-02 15:04"}}
    </div>
  </div>
</body>
</html>`
