package badges

import "html/template"

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>SonarQube Quality Gate Badges</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        h1 {
            color: #0066cc;
            border-bottom: 1px solid #ddd;
            padding-bottom: 10px;
        }
        .timestamp {
            color: #666;
            font-style: italic;
            margin-bottom: 20px;
        }
        .repositories {
            display: flex;
            flex-direction: column;
            gap: 20px;
        }
        .repository {
            border: 1px solid #ddd;
            border-radius: 5px;
            padding: 15px;
            width: 100%;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .repository h2 {
            margin-top: 0;
            color: #0066cc;
        }
        .branches {
            display: flex;
            flex-wrap: wrap;
            gap: 10px;
        }
        .branch {
            background-color: #f9f9f9;
            border-radius: 5px;
            padding: 10px;
            min-width: 200px;
        }
        .branch h3 {
            margin-top: 0;
            font-size: 16px;
            color: #333;
        }
        a {
            text-decoration: none;
        }
        img {
            max-width: 100%;
        }
    </style>
</head>
<body>
    <h1>SonarQube Quality Gate Badges</h1>
    <p class="timestamp">Last updated: {{.GeneratedAt}}</p>

    <div class="repositories">
{{- range .Repositories}}
        <div class="repository">
            <h2>{{.Name}}</h2>
            <div class="branches">
{{- range .Branches}}
                <div class="branch">
                    <h3>{{.Name}}</h3>
                    <a href="{{.ProjectURL}}" target="_blank">
                        <img src="{{.BadgeURL}}" alt="Quality Gate Status for {{.Alt}}" />
                    </a>
                </div>
{{- end}}
            </div>
        </div>
{{- end}}
    </div>
</body>
</html>
`))
