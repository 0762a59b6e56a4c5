package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "force", "circle", or "grid"
	Title  string // Page title, defaults to the root paper's title
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Layout: "force",
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid"}

// GenerateHTML generates a self-contained HTML page rendering the frame.
func GenerateHTML(frame *Frame, opts HTMLOptions) (string, error) {
	if frame == nil {
		return "", fmt.Errorf("frame cannot be nil")
	}

	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}

	if frame.IsEmpty() {
		return generateEmptyHTML(), nil
	}

	graphJSON, err := frame.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	legendJSON, err := json.Marshal(frame.Legend)
	if err != nil {
		return "", fmt.Errorf("marshaling legend to JSON: %w", err)
	}

	data := templateData{
		Title:      pageTitle(frame, opts.Title),
		GraphJSON:  template.JS(graphJSON),
		LegendJSON: template.JS(legendJSON),
		Layout:     layoutToCytoscape(opts.Layout),
		HoverWidth: HoverWidth,
		HoverColor: HoverLinkColor.Hex(),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// validateLayout checks if the layout option is valid.
func validateLayout(layout string) error {
	switch layout {
	case "", "force", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be force, circle, or grid", layout)
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title      string
	GraphJSON  template.JS
	LegendJSON template.JS
	Layout     string
	HoverWidth float64
	HoverColor string
}

// layoutToCytoscape converts user-friendly layout names to Cytoscape.js layout algorithm names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	default:
		return "cose"
	}
}

func pageTitle(frame *Frame, title string) string {
	if title != "" {
		return title
	}
	for _, n := range frame.Nodes {
		if n.ID == frame.RootID && n.Title != "" {
			return n.Title
		}
	}
	return "Similarity Graph"
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Similarity Graph - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>The snapshot for this paper has no related papers.</p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #cy {
      width: 100%;
      height: 100vh;
      background: white;
    }
    #legend {
      position: absolute;
      top: 12px;
      right: 12px;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      font-size: 12px;
      max-width: 260px;
    }
    #legend .swatch {
      display: inline-block;
      width: 10px;
      height: 10px;
      margin-right: 4px;
      border-radius: 50%;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 300px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
      white-space: pre-line;
    }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="legend"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const legend = {{.LegendJSON}};
      const layout = "{{.Layout}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': 'data(color)',
              'width': 'mapData(size, 2, 12, 10, 60)',
              'height': 'mapData(size, 2, 12, 10, 60)'
            }
          },
          {
            selector: 'node.root',
            style: {
              'border-width': 3,
              'border-color': '#333'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': 'data(color)',
              'width': 'data(width)',
              'curve-style': 'haystack'
            }
          },
          {
            selector: 'node.hovered',
            style: {
              'overlay-opacity': 0.15
            }
          },
          {
            selector: 'edge.hovered',
            style: {
              'width': {{.HoverWidth}},
              'line-color': {{.HoverColor}}
            }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          idealEdgeLength: function(edge) { return edge.data('distance'); },
          edgeElasticity: function(edge) { return 100 * edge.data('strength'); }
        }
      });

      const legendEl = document.getElementById('legend');
      let html = '<div><b>Citations</b> ' + legend.citations.min + ' - ' + legend.citations.max + '</div>';
      html += '<div><b>Years</b> fading over ' + legend.yearRange + ' years before ' + legend.currentYear + '</div>';
      legend.metrics.forEach(function(m) {
        html += '<div>' + escapeHtml(m.name) + ': ' + m.weight.toFixed(1) + '</div>';
      });
      html += '<div><span class="swatch" style="background:' + legend.originColor + '"></span>requested paper</div>';
      legendEl.innerHTML = html;

      const tooltip = document.getElementById('tooltip');

      function showTooltip(evt, content) {
        tooltip.textContent = content;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      function hideTooltip() {
        tooltip.style.display = 'none';
      }

      function escapeHtml(str) {
        if (!str) return '';
        return str.replace(/&/g, '&amp;')
                  .replace(/</g, '&lt;')
                  .replace(/>/g, '&gt;')
                  .replace(/"/g, '&quot;');
      }

      cy.on('mouseover', 'node', function(evt) {
        cy.nodes('.hovered').removeClass('hovered');
        evt.target.addClass('hovered');
        showTooltip(evt, evt.target.data('label'));
      });

      cy.on('mouseout', 'node', function(evt) {
        evt.target.removeClass('hovered');
        hideTooltip();
      });

      cy.on('mouseover', 'edge', function(evt) {
        cy.edges('.hovered').removeClass('hovered');
        evt.target.addClass('hovered');
        showTooltip(evt, 'similarity ' + evt.target.data('weighted').toFixed(3));
      });

      cy.on('mouseout', 'edge', function(evt) {
        evt.target.removeClass('hovered');
        hideTooltip();
      });

      cy.on('tap', 'node', function(evt) {
        const url = evt.target.data('url');
        if (url) window.open(url, '_blank');
      });
    })();
  </script>
</body>
</html>`
