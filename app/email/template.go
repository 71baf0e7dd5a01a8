package email

const digestHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1"></head>
<body style="margin:0;padding:0;background-color:#f3f4f6;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;">
  <table cellpadding="0" cellspacing="0" border="0" width="100%" style="background-color:#f3f4f6;">
    <tr>
      <td align="center" style="padding:24px 16px;">
        <table cellpadding="0" cellspacing="0" border="0" width="100%" style="max-width:640px;background:#ffffff;border-radius:8px;border:1px solid #e5e7eb;">
          <tr>
            <td style="padding:20px 24px;border-bottom:1px solid #e5e7eb;">
              <span style="font-size:20px;font-weight:700;color:#111827;">Daily Digest</span>
              <span style="color:#6b7280;font-size:14px;margin-left:8px;">{{.Digest.Date}}</span>
            </td>
          </tr>
          {{if .Digest.TopStories}}
          <tr>
            <td style="padding:16px 24px 0 24px;">
              <span style="font-size:13px;font-weight:600;color:#6b7280;text-transform:uppercase;letter-spacing:0.05em;">Top Stories</span>
            </td>
          </tr>
          <tr>
            <td style="padding:0 24px;">
              <table cellpadding="0" cellspacing="0" border="0" width="100%">
                {{range .Digest.TopStories}}{{template "article" (dict "Article" . "AppURL" $.AppURL "Date" $.Digest.Date "Full" true)}}{{end}}
              </table>
            </td>
          </tr>
          {{end}}
          {{if .Digest.AlsoInteresting}}
          <tr>
            <td style="padding:16px 24px 0 24px;">
              <span style="font-size:13px;font-weight:600;color:#6b7280;text-transform:uppercase;letter-spacing:0.05em;">Also Interesting</span>
            </td>
          </tr>
          <tr>
            <td style="padding:0 24px;">
              <table cellpadding="0" cellspacing="0" border="0" width="100%">
                {{range .Digest.AlsoInteresting}}{{template "article" (dict "Article" . "AppURL" $.AppURL "Date" $.Digest.Date "Full" false)}}{{end}}
              </table>
            </td>
          </tr>
          {{end}}
          <tr>
            <td style="padding:16px 24px;color:#9ca3af;font-size:12px;">
              {{.Digest.Metadata.TotalFetched}} articles fetched, {{.Digest.Metadata.TotalScored}} scored.
              <a href="{{.AppURL}}/digest/{{.Digest.Date}}" style="color:#6b7280;">View in browser</a>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
{{define "article"}}
    <tr>
      <td style="padding:12px 0;border-bottom:1px solid #e5e7eb;">
        <a href="{{.Article.URL}}" style="color:#1d4ed8;font-size:16px;font-weight:600;text-decoration:none;">{{.Article.Title}}</a>
        <span style="color:#6b7280;font-size:12px;margin-left:8px;">{{.Article.SourceName}} · {{.Article.Score}}/10</span>
        {{if .Full}}<p style="margin:4px 0 8px 0;color:#374151;font-size:14px;line-height:1.5;">{{.Article.Summary}}</p>{{end}}
        <span style="font-size:13px;">
          <a href="{{.AppURL}}/digest/{{.Date}}?article={{.Article.ID}}&amp;vote=up" style="color:#16a34a;text-decoration:none;margin-right:12px;">[+1]</a>
          <a href="{{.AppURL}}/digest/{{.Date}}?article={{.Article.ID}}&amp;vote=down" style="color:#dc2626;text-decoration:none;">[-1]</a>
        </span>
      </td>
    </tr>
{{end}}`
