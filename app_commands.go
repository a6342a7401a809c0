package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/thirukguru/relnotes/service/storage"
)

func runStorageCommand(cmd string, args []string) error {
	switch cmd {
	case "db":
		return runDBCommand(args)
	case "history":
		return runHistoryCommand(args)
	case "serve":
		return runServeCommand(args)
	default:
		return fmt.Errorf("unsupported command: %s", cmd)
	}
}

func runDBCommand(args []string) error {
	fs := pflag.NewFlagSet("db", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	olderThan := fs.Int("older-than", 90, "Purge imports older than N days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: relnotes db <vacuum|reindex|purge> [--db-path ...]")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sub := rest[0]
	switch sub {
	case "vacuum":
		return store.Vacuum(context.Background())
	case "reindex":
		return store.Reindex(context.Background())
	case "purge":
		count, err := store.PurgeOlderThan(context.Background(), *olderThan)
		if err != nil {
			return err
		}
		fmt.Printf("Purged %d imports\n", count)
		return nil
	default:
		return fmt.Errorf("unsupported db command: %s", sub)
	}
}

func runHistoryCommand(args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	limit := fs.Int("limit", 20, "Number of rows to list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: relnotes history <list|show|releases|release|compare|contributors>")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sub := rest[0]
	switch sub {
	case "list":
		imports, err := store.GetRecentImports(*limit)
		if err != nil {
			return err
		}
		for _, imp := range imports {
			fmt.Printf("%d\t%s\t%s\t%d releases\t%d commits\t%d errors\t%d warnings\n",
				imp.ImportID, imp.ImportedAt.Format("2006-01-02 15:04:05"), imp.CorpusDir,
				imp.ReleaseCount, imp.CommitCount, imp.ErrorCount, imp.WarningCount)
		}
		return nil
	case "show":
		if len(rest) < 2 {
			return fmt.Errorf("usage: relnotes history show <import-id>")
		}
		importID, err := strconv.ParseInt(rest[1], 10, 64)
		if err != nil {
			return err
		}
		issues, err := store.GetImportIssues(importID)
		if err != nil {
			return err
		}
		for _, is := range issues {
			fmt.Printf("%s\t%s\t%s\t%s\t%s\n", is.Severity, is.Rule, is.Version, is.Ref, is.Message)
		}
		return nil
	case "releases":
		summaries, err := store.GetReleaseSummaries(*limit)
		if err != nil {
			return err
		}
		for _, rs := range summaries {
			fmt.Printf("%s\t%s\t%d commits\t+%d/-%d\t%d authors\n",
				rs.Version, rs.Date, rs.CommitCount, rs.InsertionsCount, rs.DeletionsCount, rs.AuthorCount)
		}
		return nil
	case "release":
		if len(rest) < 2 {
			return fmt.Errorf("usage: relnotes history release <version>")
		}
		commits, err := store.GetCommitsByVersion(rest[1])
		if err != nil {
			return err
		}
		for _, c := range commits {
			pr := "-"
			if c.PRNumber != nil {
				pr = strconv.Itoa(*c.PRNumber)
			}
			fmt.Printf("%s\t%s\t%s\t#%s\t%s\n", c.SHA[:10], c.Type, c.Author, pr, c.Description)
		}
		return nil
	case "compare":
		if len(rest) < 3 {
			return fmt.Errorf("usage: relnotes history compare <version1> <version2>")
		}
		cmp, err := store.GetReleaseComparison(rest[1], rest[2])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d commits\n%s: %d commits\n", cmp.Version1, cmp.CommitCount1, cmp.Version2, cmp.CommitCount2)
		fmt.Printf("returning authors: %d\n", cmp.ReturningAuthors)
		if len(cmp.NewAuthors) > 0 {
			fmt.Printf("new authors: %s\n", strings.Join(cmp.NewAuthors, ", "))
		}
		return nil
	case "contributors":
		rows, err := store.GetContributorLeaderboard(*limit)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Printf("%s\t%d\n", row.Name, row.Count)
		}
		return nil
	default:
		return fmt.Errorf("unsupported history command: %s", sub)
	}
}

func runServeCommand(args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	port := fs.Int("port", 8080, "Dashboard HTTP port")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(dashboardHTML))
	})
	mux.HandleFunc("/api/releases", func(w http.ResponseWriter, _ *http.Request) {
		summaries, err := store.GetReleaseSummaries(100)
		writeJSON(w, summaries, err)
	})
	mux.HandleFunc("/api/imports", func(w http.ResponseWriter, _ *http.Request) {
		imports, err := store.GetRecentImports(50)
		writeJSON(w, imports, err)
	})
	mux.HandleFunc("/api/commits", func(w http.ResponseWriter, r *http.Request) {
		version := r.URL.Query().Get("version")
		if version == "" {
			http.Error(w, "version is required", http.StatusBadRequest)
			return
		}
		commits, err := store.GetCommitsByVersion(version)
		writeJSON(w, commits, err)
	})
	mux.HandleFunc("/api/issues", func(w http.ResponseWriter, r *http.Request) {
		importIDStr := r.URL.Query().Get("import_id")
		if importIDStr == "" {
			http.Error(w, "import_id is required", http.StatusBadRequest)
			return
		}
		importID, err := strconv.ParseInt(importIDStr, 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		issues, err := store.GetImportIssues(importID)
		writeJSON(w, issues, err)
	})
	mux.HandleFunc("/api/contributors", func(w http.ResponseWriter, _ *http.Request) {
		rows, err := store.GetContributorLeaderboard(25)
		writeJSON(w, rows, err)
	})

	addr := fmt.Sprintf(":%d", *port)
	fmt.Printf("Dashboard running on http://localhost%s\n", addr)
	err = http.ListenAndServe(addr, mux)
	_ = store.Close()
	return err
}

func writeJSON(w http.ResponseWriter, v any, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

const dashboardHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>relnotes dashboard</title>
  <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
  <style>
    body { font-family: sans-serif; margin: 24px; color: #1f2937; }
    h1 { margin: 0 0 12px; }
    .meta { margin-bottom: 16px; color: #6b7280; }
    .panel { border: 1px solid #e5e7eb; border-radius: 10px; padding: 16px; margin-bottom: 16px; }
    table { width: 100%; border-collapse: collapse; margin-top: 8px; }
    th, td { border: 1px solid #e5e7eb; padding: 8px; text-align: left; }
    th { background: #f9fafb; }
    .error { color: #b91c1c; white-space: pre-wrap; }
    tr.release { cursor: pointer; }
  </style>
</head>
<body>
  <h1>Release Notes Dashboard</h1>
  <div class="meta">Source: <code>/api/releases</code></div>
  <div class="panel">
    <canvas id="volume" height="80"></canvas>
    <div id="chart-status"></div>
  </div>
  <div class="panel">
    <h3>Releases</h3>
    <div id="table-wrap">Loading...</div>
  </div>
  <div class="panel">
    <h3>Commits</h3>
    <div id="commits-wrap"><em>Select a release above.</em></div>
  </div>
  <script>
    const tableWrap = document.getElementById('table-wrap');
    const commitsWrap = document.getElementById('commits-wrap');
    const chartStatus = document.getElementById('chart-status');

    function renderReleases(rows) {
      if (!rows || rows.length === 0) {
        tableWrap.innerHTML = '<em>No releases stored yet.</em>';
        return;
      }
      let html = '<table><thead><tr><th>Version</th><th>Date</th><th>Commits</th><th>Files</th><th>Insertions</th><th>Deletions</th><th>Breaking</th><th>Authors</th></tr></thead><tbody>';
      for (const r of rows) {
        html += '<tr class="release" data-version="' + r.version + '">' +
          '<td>' + r.version + '</td>' +
          '<td>' + r.date + '</td>' +
          '<td>' + r.commit_count + '</td>' +
          '<td>' + r.files_count + '</td>' +
          '<td>' + r.insertions_count + '</td>' +
          '<td>' + r.deletions_count + '</td>' +
          '<td>' + r.breaking_count + '</td>' +
          '<td>' + r.author_count + '</td>' +
          '</tr>';
      }
      html += '</tbody></table>';
      tableWrap.innerHTML = html;
      for (const tr of tableWrap.querySelectorAll('tr.release')) {
        tr.addEventListener('click', () => loadCommits(tr.dataset.version));
      }
    }

    function loadCommits(version) {
      commitsWrap.innerHTML = 'Loading ' + version + '...';
      fetch('/api/commits?version=' + encodeURIComponent(version))
        .then(r => {
          if (!r.ok) throw new Error('HTTP ' + r.status);
          return r.json();
        })
        .then(rows => {
          if (!rows || rows.length === 0) {
            commitsWrap.innerHTML = '<em>No commits stored for ' + version + '.</em>';
            return;
          }
          let html = '<table><thead><tr><th>SHA</th><th>Type</th><th>Author</th><th>PR</th><th>Description</th></tr></thead><tbody>';
          for (const c of rows) {
            html += '<tr>' +
              '<td><code>' + c.sha.slice(0, 10) + '</code></td>' +
              '<td>' + c.type + '</td>' +
              '<td>' + c.author + '</td>' +
              '<td>' + (c.pr_number ? '#' + c.pr_number : '-') + '</td>' +
              '<td>' + c.description + '</td>' +
              '</tr>';
          }
          html += '</tbody></table>';
          commitsWrap.innerHTML = html;
        })
        .catch(err => {
          commitsWrap.innerHTML = '<div class="error">Failed to load commits: ' + err.message + '</div>';
        });
    }

    fetch('/api/releases')
      .then(r => {
        if (!r.ok) throw new Error('HTTP ' + r.status);
        return r.json();
      })
      .then(rows => {
        renderReleases(rows);
        if (!rows || rows.length === 0) return;
        if (typeof Chart !== 'function') {
          chartStatus.innerHTML = '<div class="error">Chart.js failed to load; showing table fallback.</div>';
          return;
        }
        const ordered = rows.slice().reverse();
        const labels = ordered.map(x => x.version);
        const vals = ordered.map(x => x.commit_count);
        new Chart(document.getElementById('volume'), {
          type: 'line',
          data: { labels: labels, datasets: [{ label: 'Commits per release', data: vals, borderColor: '#ff9900' }] },
          options: {
            responsive: true,
            plugins: {
              legend: { display: true }
            },
            scales: {
              x: {
                title: {
                  display: true,
                  text: 'Version'
                }
              },
              y: {
                title: {
                  display: true,
                  text: 'Commits'
                },
                beginAtZero: true
              }
            }
          }
        });
      })
      .catch(err => {
        tableWrap.innerHTML = '<div class="error">Failed to load releases: ' + err.message + '</div>';
        chartStatus.innerHTML = '<div class="error">Chart not rendered.</div>';
      });
  </script>
</body>
</html>`
