package templates

// CSStempl is the report style sheet
var CSStempl = []byte(`body {
  margin: 0;
  font-family: 'Lucida Sans', Arial, sans-serif;
  color: #222;
}

h1 {
  font-family: 'Lato', sans-serif;
  font-size: 28px;
  font-weight: 300;
  margin: 24px 0 12px;
  text-indent: 30px;
}

h2 {
  font-family: 'Lato', sans-serif;
  font-size: 18px;
  font-weight: 400;
  text-indent: 30px;
}

ul {
  list-style-type: none;
  margin: 0;
  padding: 0;
  overflow: hidden;
  background-color: #1d2731;
}

li {
  float: left;
}

li a {
  display: block;
  color: #fff;
  padding: 14px 16px;
  text-decoration: none;
}

li a:hover {
  background-color: #3a6ea5;
}

.info {
  margin: 10px 30px;
  padding: 12px;
  color: #fff;
  background-color: #333;
}

.container {
  margin: 0 30px;
  overflow-x: auto;
}

table {
  border-collapse: collapse;
  width: 100%;
}

th, td {
  text-align: left;
  padding: 6px 8px;
  font-family: monospace;
}

tr:nth-child(even) {
  background-color: #f2f2f2;
}

.charts {
  display: flex;
  flex-wrap: wrap;
  margin: 0 20px;
}

figure img {
  max-width: 640px;
}
`)
